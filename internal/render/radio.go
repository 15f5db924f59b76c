package render

import (
	"html/template"

	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

// RadioLayout renders every purchase option as a radio row, the classic
// widget look. CSS namespace: loop-widget-*.
type RadioLayout struct {
	base
}

var radioTmpl = template.Must(template.New("radio").Parse(`<div class="loop-widget">
{{- if .BundleName}}
  <div class="loop-widget-bundle-name">{{.BundleName}}</div>
{{- end}}
{{- if .ShowLabel}}
  <div class="loop-widget-label">{{.Label}}</div>
{{- end}}
{{- if and .OneTime .OneTimeFirst}}
{{- template "radio-onetime" .OneTime}}
{{- end}}
{{- range .Groups}}
  <label class="loop-widget-option{{if .Selected}} loop-widget-option-selected{{end}}" data-group-id="{{.ID}}">
    <input type="radio" name="loop-widget-option" value="{{.ID}}"{{if .Selected}} checked{{end}}>
    <span class="loop-widget-option-name">{{.Name}}</span>
{{- if eq .SelectorStyle "TEXT"}}
{{- with index .Plans 0}}
    <span class="loop-widget-plan-text">{{.Label}}</span>
    <span class="loop-widget-price">{{.Price}}</span>
{{- if .Badge}}
    <span class="loop-widget-badge">{{.Badge}}</span>
{{- end}}
{{- if .FullPriceLine}}
    <span class="loop-widget-prepaid-note">{{.FullPriceLine}}</span>
{{- end}}
{{- end}}
{{- else if eq .SelectorStyle "BUTTON"}}
    <span class="loop-widget-plan-buttons">
{{- range .Plans}}
      <button type="button" class="loop-widget-plan-button{{if .Selected}} loop-widget-plan-button-selected{{end}}" data-plan-id="{{.ID}}">{{.Label}}</button>
{{- end}}
    </span>
{{- template "radio-selected-plan" .Plans}}
{{- else}}
    <select class="loop-widget-plan-select" data-group-id="{{.ID}}">
{{- range .Plans}}
      <option value="{{.ID}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
    </select>
{{- template "radio-selected-plan" .Plans}}
{{- end}}
  </label>
{{- end}}
{{- if and .OneTime (not .OneTimeFirst)}}
{{- template "radio-onetime" .OneTime}}
{{- end}}
{{- if and .AlwaysShowDetails .Details}}
  <div class="loop-widget-details">
    <div class="loop-widget-details-title">{{.Details}}</div>
{{- if .DetailsDescription}}
    <div class="loop-widget-details-description">{{.DetailsDescription}}</div>
{{- end}}
  </div>
{{- else if and .DetailsPopup .Details}}
  <div class="loop-widget-tooltip" role="tooltip">{{.Details}}</div>
{{- end}}
</div>
{{- define "radio-onetime"}}
  <label class="loop-widget-option{{if .Selected}} loop-widget-option-selected{{end}}" data-one-time>
    <input type="radio" name="loop-widget-option" value=""{{if .Selected}} checked{{end}}>
    <span class="loop-widget-option-name">{{.Label}}</span>
    <span class="loop-widget-price">{{if .CompareAt}}<s class="loop-widget-compare-at">{{.CompareAt}}</s> {{end}}{{.Price}}</span>
{{- if .Description}}
    <span class="loop-widget-option-description">{{.Description}}</span>
{{- end}}
  </label>
{{- end}}
{{- define "radio-selected-plan"}}
{{- range .}}
{{- if .Selected}}
    <span class="loop-widget-price">{{.Price}}</span>
{{- if .Badge}}
    <span class="loop-widget-badge">{{.Badge}}</span>
{{- end}}
{{- if .FullPriceLine}}
    <span class="loop-widget-prepaid-note">{{.FullPriceLine}}</span>
{{- end}}
{{- end}}
{{- end}}
{{- end}}`))

func (l *RadioLayout) Init(model *widget.Model, state selection.State) (string, error) {
	return l.init(model, radioTmpl, state)
}
