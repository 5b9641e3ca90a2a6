package field

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgLabel          = "SVG Icon selector"
	msgCategory       = "Basic"
	msgPlaceholder    = "Select an icon"
	msgAllowClear     = "Display clear button?"
	msgAllowClearHelp = "Whether or not a clear button is displayed when the select box has a selection."
	msgYes            = "Yes"
	msgNo             = "No"
)

var supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(supported)

func init() {
	fr := map[string]string{
		msgLabel:          "Sélecteur d'icône SVG",
		msgCategory:       "Basique",
		msgPlaceholder:    "Sélectionnez une icône",
		msgAllowClear:     "Afficher le bouton de suppression ?",
		msgAllowClearHelp: "Affiche ou non un bouton pour vider la sélection lorsqu'une icône est choisie.",
		msgYes:            "Oui",
		msgNo:             "Non",
	}
	for key, val := range fr {
		_ = message.SetString(language.French, key, val)
	}
}

// Printer подбирает язык по заголовку Accept-Language или параметру lang.
// Неизвестные языки — английский.
func Printer(accept string) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return message.NewPrinter(language.English)
	}
	_, idx, _ := matcher.Match(tags...)
	return message.NewPrinter(supported[idx])
}
