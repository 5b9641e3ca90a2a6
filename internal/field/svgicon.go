package field

import (
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/message"
)

const SvgIconName = "svg_icon"

var (
	inputTmpl = template.Must(template.New("input").Parse(
		`<input class="widefat acf-svg-icon-{{.Type}}" value="{{.Value}}" name="{{.Name}}" ` +
			`data-placeholder="{{.Placeholder}}" data-allow-clear="{{.AllowClear}}" />`))

	settingsTmpl = template.Must(template.New("settings").Parse(
		`<div class="acf-field acf-field-true-false" data-name="allow_clear" data-type="true_false">` +
			`<div class="acf-label"><label for="{{.ID}}">{{.Label}}</label>` +
			`<p class="description">{{.Instructions}}</p></div>` +
			`<div class="acf-input"><div class="acf-true-false">` +
			`<input type="hidden" name="{{.Name}}" value="0" />` +
			`<label><input type="checkbox" id="{{.ID}}" name="{{.Name}}" value="1" class="acf-switch-input"{{if .Checked}} checked="checked"{{end}} />` +
			`<div class="acf-switch{{if .Checked}} -on{{end}}"><span class="acf-switch-on">{{.Yes}}</span><span class="acf-switch-off">{{.No}}</span></div>` +
			`</label></div></div></div>`))
)

// SvgIcon — поле выбора SVG-иконки. Значение — id иконки из списка icons.Library.
type SvgIcon struct{}

var _ Type = SvgIcon{}

func (SvgIcon) Name() string { return SvgIconName }

func (SvgIcon) Label(p *message.Printer) string { return p.Sprintf(msgLabel) }

func (SvgIcon) Category(p *message.Printer) string { return p.Sprintf(msgCategory) }

func (SvgIcon) Defaults() map[string]any {
	return map[string]any{"allow_clear": 0}
}

func (f SvgIcon) Render(w io.Writer, p *message.Printer, cfg Config) error {
	if cfg.Type == "" {
		cfg.Type = f.Name()
	}
	return inputTmpl.Execute(w, struct {
		Type, Value, Name, Placeholder string
		AllowClear                     int
	}{
		Type:        cfg.Type,
		Value:       cfg.Value,
		Name:        cfg.Name,
		Placeholder: p.Sprintf(msgPlaceholder),
		AllowClear:  boolInt(cfg.AllowClear),
	})
}

func (SvgIcon) RenderSettings(w io.Writer, p *message.Printer, cfg Config) error {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "acf_field"
	}
	return settingsTmpl.Execute(w, struct {
		ID, Name, Label, Instructions, Yes, No string
		Checked                                bool
	}{
		ID:           prefix + "-allow_clear",
		Name:         fmt.Sprintf("%s[allow_clear]", prefix),
		Label:        p.Sprintf(msgAllowClear),
		Instructions: p.Sprintf(msgAllowClearHelp),
		Yes:          p.Sprintf(msgYes),
		No:           p.Sprintf(msgNo),
		Checked:      cfg.AllowClear,
	})
}

// FormatValue отдаёт сохранённое значение без изменений.
func (SvgIcon) FormatValue(value any) any { return value }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
