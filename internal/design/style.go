package design

import "strings"

type Style string

const (
	Modern       Style = "modern"
	Minimalist   Style = "minimalist"
	Industrial   Style = "industrial"
	Scandinavian Style = "scandinavian"
	Bohemian     Style = "bohemian"
	Traditional  Style = "traditional"
	Contemporary Style = "contemporary"
	Rustic       Style = "rustic"
)

// Styles is the selector order on the creation page.
var Styles = []Style{
	Modern,
	Minimalist,
	Industrial,
	Scandinavian,
	Bohemian,
	Traditional,
	Contemporary,
	Rustic,
}

var ValidStyle = map[Style]bool{
	Modern:       true,
	Minimalist:   true,
	Industrial:   true,
	Scandinavian: true,
	Bohemian:     true,
	Traditional:  true,
	Contemporary: true,
	Rustic:       true,
}

func IsValid(style string) bool {
	_, ok := ValidStyle[Style(style)]
	return ok
}

// Label is the display form, e.g. "Scandinavian".
func (s Style) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
