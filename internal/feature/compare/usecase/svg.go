package usecase

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"
)

const (
	svgWidth     = 480
	svgBarHeight = 18
	svgBarGap    = 8
	svgTop       = 88
	svgLabelW    = 140
	svgBarMaxW   = svgWidth - svgLabelW - 60
)

// BuildCompareSVG は比較結果を表すSVGを生成します。
// タイトルはエスケープされ、重みはキー順に1本ずつ棒グラフとして描かれます。
func BuildCompareSVG(title string, weights map[string]float64, score float64) string {
	keys := slices.Sorted(maps.Keys(weights))

	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}

	height := svgTop + len(keys)*(svgBarHeight+svgBarGap) + 24
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, svgWidth, height, svgWidth, height)
	b.WriteString(`<rect width="100%" height="100%" fill="#0b1020"/>`)
	fmt.Fprintf(&b, `<text x="20" y="32" fill="#e6ecff" font-family="sans-serif" font-size="18">%s</text>`, html.EscapeString(title))
	fmt.Fprintf(&b, `<text x="20" y="56" fill="#8fb3ff" font-family="sans-serif" font-size="13">Score %.2f</text>`, clamp(score, 0, 1))
	b.WriteString(`<text x="20" y="78" fill="#e6ecff" font-family="sans-serif" font-size="12">Weights</text>`)

	for i, k := range keys {
		y := svgTop + i*(svgBarHeight+svgBarGap)
		share := 0.0
		if total > 0 && weights[k] > 0 {
			share = weights[k] / total
		}
		fmt.Fprintf(&b, `<text x="20" y="%d" fill="#c7d2fe" font-family="sans-serif" font-size="12">%s</text>`, y+13, html.EscapeString(k))
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.1f" height="%d" rx="3" fill="#5b8cff"/>`, svgLabelW, y, share*svgBarMaxW, svgBarHeight)
		fmt.Fprintf(&b, `<text x="%d" y="%d" fill="#c7d2fe" font-family="sans-serif" font-size="11">%.0f%%</text>`, svgWidth-50, y+13, share*100)
	}
	b.WriteString(`</svg>`)
	return b.String()
}
