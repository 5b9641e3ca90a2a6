// Package field описывает типы полей формы, которые можно выбрать в конструкторе,
// и реализует поле выбора SVG-иконки.
package field

import (
	"io"

	"golang.org/x/text/message"
)

// Config — настройки конкретного экземпляра поля.
type Config struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	AllowClear bool   `json:"allow_clear"`
	// Префикс имён инпутов панели настроек
	Prefix string `json:"prefix,omitempty"`
}

// Type — тип поля, подключаемый в реестр.
type Type interface {
	Name() string
	Label(p *message.Printer) string
	Category(p *message.Printer) string
	Defaults() map[string]any
	// Render выводит инпут поля на форме редактирования.
	Render(w io.Writer, p *message.Printer, cfg Config) error
	// RenderSettings выводит дополнительные настройки поля в конструкторе.
	RenderSettings(w io.Writer, p *message.Printer, cfg Config) error
	// FormatValue преобразует сохранённое значение перед выдачей в шаблон.
	FormatValue(value any) any
}
