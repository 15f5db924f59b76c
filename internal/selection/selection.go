// Package selection holds the widget's only mutable state: which purchase
// option (one-time, or group + plan) is active for the current variant. Every
// transition re-establishes the invariant that a group is selected exactly
// when a plan is, and that the plan belongs to the group on the variant.
package selection

import (
	"sync"

	"subscription-widget/internal/bundle"
	"subscription-widget/internal/widget"
)

// State is an immutable snapshot of the current selection. A zero GroupID and
// PlanID mean one-time purchase.
type State struct {
	VariantID int64
	GroupID   string
	PlanID    int64
}

// Subscription reports whether a selling plan is active.
func (s State) Subscription() bool {
	return s.GroupID != "" && s.PlanID != 0
}

// Listener is notified after every completed transition.
type Listener func(State)

type Machine struct {
	mu    sync.Mutex
	model *widget.Model
	state State

	// stickyGroupID remembers the last explicitly chosen group so a variant
	// switch lands the shopper back on it when it is still offered.
	stickyGroupID string

	listeners []Listener
}

// NewMachine builds the machine and resolves the initial selection for the
// variant.
func NewMachine(model *widget.Model, variantID int64) *Machine {
	m := &Machine{model: model}
	m.state = m.resolveInitial(variantID)
	return m
}

// OnChange registers a transition listener.
func (m *Machine) OnChange(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

// Snapshot returns the current selection.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// SelectGroup activates the group with its default plan. Unknown or
// ineligible groups are ignored; re-selecting the active group keeps the
// shopper's plan choice.
func (m *Machine) SelectGroup(groupID string) {
	m.mu.Lock()

	if !m.groupVisible(m.state.VariantID, groupID) {
		m.mu.Unlock()
		return
	}

	if groupID == m.state.GroupID &&
		containsInt64(m.model.Index.GroupPlansForVariant(m.state.VariantID, groupID), m.state.PlanID) {
		m.mu.Unlock()
		return
	}

	m.state.GroupID = groupID
	m.state.PlanID = m.defaultPlan(m.state.VariantID, groupID)
	m.stickyGroupID = groupID

	m.notifyLocked()
}

// SelectPlan activates a specific plan within the active group. A plan pick
// on an inactive group is a group change first, landing on that group's
// default plan.
func (m *Machine) SelectPlan(groupID string, planID int64) {
	m.mu.Lock()

	if !m.groupVisible(m.state.VariantID, groupID) {
		m.mu.Unlock()
		return
	}

	if groupID != m.state.GroupID {
		m.state.GroupID = groupID
		m.state.PlanID = m.defaultPlan(m.state.VariantID, groupID)
		m.stickyGroupID = groupID

		m.notifyLocked()
		return
	}

	if !containsInt64(m.model.Index.GroupPlansForVariant(m.state.VariantID, groupID), planID) {
		m.mu.Unlock()
		return
	}

	m.state.GroupID = groupID
	m.state.PlanID = planID
	m.stickyGroupID = groupID

	m.notifyLocked()
}

// SelectOneTime clears the subscription selection. Ignored when the product
// requires a selling plan. Idempotent.
func (m *Machine) SelectOneTime() {
	m.mu.Lock()

	if m.model.Product.RequiresSellingPlan {
		m.mu.Unlock()
		return
	}
	if !m.state.Subscription() {
		m.mu.Unlock()
		return
	}

	m.state.GroupID = ""
	m.state.PlanID = 0

	m.notifyLocked()
}

// ResetForVariant re-resolves the selection after the shopper switches
// variants. An active subscription carries over to the sticky group when it
// is still offered, otherwise to the first eligible group.
func (m *Machine) ResetForVariant(variantID int64) {
	m.mu.Lock()

	wasSubscribed := m.state.Subscription()
	m.state = m.resolveInitial(variantID)

	if wasSubscribed && !m.state.Subscription() {
		if groupID := m.firstVisibleGroup(variantID); groupID != "" {
			m.state.GroupID = groupID
			m.state.PlanID = m.defaultPlan(variantID, groupID)
		}
	}

	m.notifyLocked()
}

// resolveInitial picks the starting selection for a variant: subscription
// when the product mandates a plan, the merchant defaults to it, the bundle
// is subscription-only, or the shopper already chose a group; one-time
// otherwise.
func (m *Machine) resolveInitial(variantID int64) State {
	state := State{VariantID: variantID}

	groupID := m.stickyGroupID
	if !m.groupVisible(variantID, groupID) {
		groupID = m.firstVisibleGroup(variantID)
	}
	if groupID == "" {
		return state
	}

	subscribe := m.model.Product.RequiresSellingPlan ||
		m.model.StrPref(widget.PrefPurchaseOptionLabel) == "Subscription" ||
		(m.model.Bundle != nil && m.model.Bundle.PurchaseType == bundle.PurchaseSubscription) ||
		m.stickyGroupID != ""

	if subscribe {
		state.GroupID = groupID
		state.PlanID = m.defaultPlan(variantID, groupID)
	}
	return state
}

// defaultPlan resolves the plan activated when a group is selected: the first
// merchant default offered by the group on the variant, else the group's
// first plan.
func (m *Machine) defaultPlan(variantID int64, groupID string) int64 {
	plans := m.model.Index.GroupPlansForVariant(variantID, groupID)
	if len(plans) == 0 {
		return 0
	}

	for _, id := range m.model.DefaultPlanIDs() {
		if containsInt64(plans, id) {
			return id
		}
	}
	return plans[0]
}

func (m *Machine) groupVisible(variantID int64, groupID string) bool {
	if groupID == "" {
		return false
	}
	for _, g := range m.model.VisibleGroups(variantID) {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

func (m *Machine) firstVisibleGroup(variantID int64) string {
	groups := m.model.VisibleGroups(variantID)
	if len(groups) == 0 {
		return ""
	}
	return groups[0].ID
}

// notifyLocked snapshots under the lock, releases it, then calls listeners so
// they may call back into the machine.
func (m *Machine) notifyLocked() {
	state := m.state
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func containsInt64(list []int64, n int64) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
