package render

import (
	"bytes"
	"errors"
	"html/template"

	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

var ErrUnknownLayout = errors.New("unknown widget layout type")

// Layout renders the widget for one layout style. Init produces the first
// markup; the On* hooks are wired as selection listeners and re-render the
// whole widget, which is cheap at this size.
type Layout interface {
	Init(model *widget.Model, state selection.State) (string, error)
	OnGroupSelected(state selection.State) (string, error)
	OnPlanSelected(state selection.State) (string, error)
	OnOneTimeSelected(state selection.State) (string, error)
}

// NewLayout picks the layout implementation from the widget preferences.
// Radio is the default, matching unconfigured widgets.
func NewLayout(model *widget.Model) (Layout, error) {
	switch model.StrPref(widget.PrefLayoutType) {
	case widget.LayoutRadio, "":
		return &RadioLayout{}, nil
	case widget.LayoutButtonGroup:
		return &ButtonGroupLayout{}, nil
	case widget.LayoutCheckbox:
		return &CheckboxLayout{}, nil
	default:
		return nil, ErrUnknownLayout
	}
}

// Bind registers the layout as a selection listener: every transition
// re-renders and the markup is handed to sink. Render failures drop the
// update rather than breaking the page.
func Bind(machine *selection.Machine, layout Layout, sink func(html string)) {
	prev := machine.Snapshot()
	machine.OnChange(func(state selection.State) {
		var html string
		var err error
		switch {
		case !state.Subscription():
			html, err = layout.OnOneTimeSelected(state)
		case state.GroupID != prev.GroupID:
			html, err = layout.OnGroupSelected(state)
		default:
			html, err = layout.OnPlanSelected(state)
		}
		prev = state
		if err == nil {
			sink(html)
		}
	})
}

// base carries the re-render plumbing shared by all layouts.
type base struct {
	model *widget.Model
	tmpl  *template.Template
}

func (b *base) init(model *widget.Model, tmpl *template.Template, state selection.State) (string, error) {
	b.model = model
	b.tmpl = tmpl
	return b.render(state)
}

func (b *base) render(state selection.State) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, BuildView(b.model, state)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (b *base) OnGroupSelected(state selection.State) (string, error)   { return b.render(state) }
func (b *base) OnPlanSelected(state selection.State) (string, error)    { return b.render(state) }
func (b *base) OnOneTimeSelected(state selection.State) (string, error) { return b.render(state) }
