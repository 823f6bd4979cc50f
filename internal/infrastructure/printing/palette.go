package printing

import "github.com/sepur/finance/internal/domain/document"

// swatch is one emphasis color in both HTML and RGB form
type swatch struct {
	Hex              string
	Red, Green, Blue int
}

var palette = map[document.Emphasis]swatch{
	document.EmphasisNeutral:  {Hex: "#374151", Red: 55, Green: 65, Blue: 81},
	document.EmphasisInfo:     {Hex: "#1d4ed8", Red: 29, Green: 78, Blue: 216},
	document.EmphasisPositive: {Hex: "#15803d", Red: 21, Green: 128, Blue: 61},
	document.EmphasisWarning:  {Hex: "#b45309", Red: 180, Green: 83, Blue: 9},
	document.EmphasisNegative: {Hex: "#b91c1c", Red: 185, Green: 28, Blue: 28},
}

// EmphasisColor returns the CSS color of an emphasis category.
// Unknown categories fall back to neutral.
func EmphasisColor(e document.Emphasis) string {
	return swatchOf(e).Hex
}

func swatchOf(e document.Emphasis) swatch {
	if s, ok := palette[e]; ok {
		return s
	}
	return palette[document.EmphasisNeutral]
}
