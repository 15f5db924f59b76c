package render

import (
	"html/template"

	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

// ButtonGroupLayout renders purchase options as a segmented button row with
// the active option's plan selector underneath. CSS namespace:
// loop-w-btn-group-*.
type ButtonGroupLayout struct {
	base
}

var buttonGroupTmpl = template.Must(template.New("buttongroup").Parse(`<div class="loop-w-btn-group">
{{- if .BundleName}}
  <div class="loop-w-btn-group-bundle-name">{{.BundleName}}</div>
{{- end}}
{{- if .ShowLabel}}
  <div class="loop-w-btn-group-label">{{.Label}}</div>
{{- end}}
  <div class="loop-w-btn-group-row">
{{- if and .OneTime .OneTimeFirst}}
{{- template "bg-onetime-button" .OneTime}}
{{- end}}
{{- range .Groups}}
    <button type="button" class="loop-w-btn-group-option{{if .Selected}} loop-w-btn-group-option-selected{{end}}" data-group-id="{{.ID}}">{{.Name}}</button>
{{- end}}
{{- if and .OneTime (not .OneTimeFirst)}}
{{- template "bg-onetime-button" .OneTime}}
{{- end}}
  </div>
{{- if and .OneTime .OneTime.Selected}}
  <div class="loop-w-btn-group-panel" data-one-time>
    <span class="loop-w-btn-group-price">{{if .OneTime.CompareAt}}<s class="loop-w-btn-group-compare-at">{{.OneTime.CompareAt}}</s> {{end}}{{.OneTime.Price}}</span>
{{- if .OneTime.Description}}
    <span class="loop-w-btn-group-description">{{.OneTime.Description}}</span>
{{- end}}
  </div>
{{- end}}
{{- range .Groups}}
{{- if .Selected}}
  <div class="loop-w-btn-group-panel" data-group-id="{{.ID}}">
{{- if eq .SelectorStyle "TEXT"}}
{{- with index .Plans 0}}
    <span class="loop-w-btn-group-plan-text">{{.Label}}</span>
{{- end}}
{{- else if eq .SelectorStyle "BUTTON"}}
    <div class="loop-w-btn-group-plans">
{{- range .Plans}}
      <button type="button" class="loop-w-btn-group-plan{{if .Selected}} loop-w-btn-group-plan-selected{{end}}" data-plan-id="{{.ID}}">{{.Label}}</button>
{{- end}}
    </div>
{{- else}}
    <select class="loop-w-btn-group-plan-select" data-group-id="{{.ID}}">
{{- range .Plans}}
      <option value="{{.ID}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
    </select>
{{- end}}
{{- range .Plans}}
{{- if .Selected}}
    <span class="loop-w-btn-group-price">{{.Price}}</span>
{{- if .Badge}}
    <span class="loop-w-btn-group-badge">{{.Badge}}</span>
{{- end}}
{{- if .FullPriceLine}}
    <span class="loop-w-btn-group-prepaid-note">{{.FullPriceLine}}</span>
{{- end}}
{{- end}}
{{- end}}
  </div>
{{- end}}
{{- end}}
{{- if and .AlwaysShowDetails .Details}}
  <div class="loop-w-btn-group-details">{{.Details}}</div>
{{- end}}
</div>
{{- define "bg-onetime-button"}}
    <button type="button" class="loop-w-btn-group-option{{if .Selected}} loop-w-btn-group-option-selected{{end}}" data-one-time>{{.Label}}</button>
{{- end}}`))

func (l *ButtonGroupLayout) Init(model *widget.Model, state selection.State) (string, error) {
	return l.init(model, buttonGroupTmpl, state)
}
