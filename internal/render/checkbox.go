package render

import (
	"html/template"

	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

// CheckboxLayout renders a single "subscribe" checkbox that toggles between
// one-time and the first selling plan group. CSS namespace: loop-w-checkbox-*.
// The loader never picks this layout when the product mandates a plan, since
// the checkbox could not be unticked.
type CheckboxLayout struct {
	base
}

var checkboxTmpl = template.Must(template.New("checkbox").Parse(`<div class="loop-w-checkbox">
{{- if .BundleName}}
  <div class="loop-w-checkbox-bundle-name">{{.BundleName}}</div>
{{- end}}
{{- range $i, $g := .Groups}}
{{- if eq $i 0}}
  <label class="loop-w-checkbox-control">
    <input type="checkbox" value="{{$g.ID}}"{{if $g.Selected}} checked{{end}}>
    <span class="loop-w-checkbox-name">{{$g.Name}}</span>
{{- range $g.Plans}}
{{- if .Selected}}
    <span class="loop-w-checkbox-price">{{.Price}}</span>
{{- if .Badge}}
    <span class="loop-w-checkbox-badge">{{.Badge}}</span>
{{- end}}
{{- end}}
{{- end}}
  </label>
{{- if $g.Selected}}
{{- if eq $g.SelectorStyle "TEXT"}}
{{- with index $g.Plans 0}}
  <span class="loop-w-checkbox-plan-text">{{.Label}}</span>
{{- end}}
{{- else}}
  <select class="loop-w-checkbox-plan-select" data-group-id="{{$g.ID}}">
{{- range $g.Plans}}
    <option value="{{.ID}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
  </select>
{{- end}}
{{- end}}
{{- end}}
{{- end}}
{{- if and .AlwaysShowDetails .Details}}
  <div class="loop-w-checkbox-details">{{.Details}}</div>
{{- else if and .DetailsPopup .Details}}
  <div class="loop-w-checkbox-tooltip" role="tooltip">{{.Details}}</div>
{{- end}}
</div>`))

func (l *CheckboxLayout) Init(model *widget.Model, state selection.State) (string, error) {
	return l.init(model, checkboxTmpl, state)
}
