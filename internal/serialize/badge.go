package serialize

import "fmt"

// badgeColors maps a metric name to a fixed badge color, so the same
// metric always renders the same hue run over run.
var badgeColors = map[string]string{
	"lines":  "#007ec6",
	"tokens": "#4c1",
	"doc":    "#97ca00",
	"blank":  "#9f9f9f",
	"code":   "#007ec6",
}

const defaultBadgeColor = "#555"

// RenderSVGBadge renders a fixed-template shields.io-style badge for
// metric/value. Output always starts with "<svg " and ends with
// "</svg>".
func RenderSVGBadge(metric, value string) string {
	color, ok := badgeColors[metric]
	if !ok {
		color = defaultBadgeColor
	}

	labelWidth := 6*len(metric) + 10
	valueWidth := 6*len(value) + 10
	totalWidth := labelWidth + valueWidth

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20" role="img" aria-label="%s: %s">`+
		`<rect width="%d" height="20" fill="#555"/>`+
		`<rect x="%d" width="%d" height="20" fill="%s"/>`+
		`<text x="%d" y="14" fill="#fff" font-family="Verdana,sans-serif" font-size="11">%s</text>`+
		`<text x="%d" y="14" fill="#fff" font-family="Verdana,sans-serif" font-size="11">%s</text>`+
		`</svg>`,
		totalWidth, metric, value, totalWidth, labelWidth, valueWidth, color, labelWidth/2, metric, labelWidth+valueWidth/2, value)
}
