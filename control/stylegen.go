package control

import (
	"fmt"

	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/dom/style/cssom/douceuradapter"
)

// GenerateStyle expands a style template for a control id and a marker class
// and returns the canonical CSS text.
//
// GenerateStyle has no side effects. Equal arguments yield byte-identical
// results, however often it is called.
func GenerateStyle(tmpl, controlID, markerClass string) (string, error) {
	text, err := config.ExpandStyle(tmpl, controlID, markerClass)
	if err != nil {
		return "", fmt.Errorf("style template: %w", err)
	}
	sheet, err := douceuradapter.Parse(text)
	if err != nil {
		return "", fmt.Errorf("generated style does not parse: %w", err)
	}
	return sheet.String(), nil
}
