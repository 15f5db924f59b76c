package hostpage

import (
	"strconv"
	"sync"

	"subscription-widget/internal/platform"
)

// VariantSource announces variant changes on the host page. The widget never
// watches the page directly; any mechanism that can call the subscribers
// qualifies.
type VariantSource interface {
	// Subscribe registers fn and returns a cancel func.
	Subscribe(fn func(variantID int64)) func()
}

// FormWatcher is a VariantSource fed by the host integration whenever the
// product form's variant field changes. It de-duplicates repeat values, which
// option-picker themes emit on every click.
type FormWatcher struct {
	mu          sync.Mutex
	form        *Form
	lastVariant int64
	subs        map[int]func(variantID int64)
	nextSub     int
}

func NewFormWatcher(form *Form) *FormWatcher {
	w := &FormWatcher{
		form: form,
		subs: make(map[int]func(variantID int64)),
	}
	if field := form.Field(FieldVariantID); field != nil {
		w.lastVariant, _ = strconv.ParseInt(field.Value, 10, 64)
	}
	return w
}

func (w *FormWatcher) Subscribe(fn func(variantID int64)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Check re-reads the form's variant field and notifies subscribers when it
// changed. Call it from whatever change notification the host provides.
func (w *FormWatcher) Check() {
	field := w.form.Field(FieldVariantID)
	if field == nil {
		return
	}
	variantID, err := strconv.ParseInt(field.Value, 10, 64)
	if err != nil {
		return
	}

	w.mu.Lock()
	if variantID == w.lastVariant {
		w.mu.Unlock()
		return
	}
	w.lastVariant = variantID

	fns := make([]func(int64), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(variantID)
	}
}

// ChannelSource is a VariantSource fed from a channel, for hosts that emit
// native variant-change events. Close the channel to stop the fan-out
// goroutine.
type ChannelSource struct {
	mu      sync.Mutex
	subs    map[int]func(variantID int64)
	nextSub int
}

func NewChannelSource(ch <-chan int64) *ChannelSource {
	s := &ChannelSource{subs: make(map[int]func(variantID int64))}
	go func() {
		for variantID := range ch {
			s.mu.Lock()
			fns := make([]func(int64), 0, len(s.subs))
			for _, fn := range s.subs {
				fns = append(fns, fn)
			}
			s.mu.Unlock()
			for _, fn := range fns {
				fn(variantID)
			}
		}
	}()
	return s
}

func (s *ChannelSource) Subscribe(fn func(variantID int64)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// ResolveVariantID picks the active variant: the form's variant field, then
// the ?variant= query parameter, then the first available variant.
func ResolveVariantID(page *Page, form *Form, product *platform.Product) int64 {
	if form != nil {
		if field := form.Field(FieldVariantID); field != nil {
			if id, err := strconv.ParseInt(field.Value, 10, 64); err == nil && id != 0 {
				if _, ok := product.VariantByID(id); ok {
					return id
				}
			}
		}
	}

	if page != nil {
		if raw, ok := page.Query["variant"]; ok {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				if _, ok := product.VariantByID(id); ok {
					return id
				}
			}
		}
	}

	return product.FirstAvailableVariantID()
}
