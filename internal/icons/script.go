package icons

import (
	"context"
	"encoding/json"
	"fmt"
)

// Глобальная переменная, из которой виджет выбора читает список иконок
const ClientDataVar = "svg_icon_format_data"

// LocalizeScript сериализует результат ParseIcons в js для подключения на странице.
func (l *Library) LocalizeScript(ctx context.Context) ([]byte, error) {
	entries, err := l.ParseIcons(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode icons: %w", err)
	}
	return fmt.Appendf(nil, "var %s = %s;\n", ClientDataVar, payload), nil
}
