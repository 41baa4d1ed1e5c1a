package main

import (
	"fmt"
	"math"
	"strings"
)

// chart is one rendered figure, written as <name>-light.svg and <name>-dark.svg.
type chart struct {
	Name    string  `json:"name"`
	Unit    string  `json:"unit"`
	Step    float64 `json:"step"`
	Entries []entry `json:"entries"`
}

type entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

const (
	chartWidth   = 800.0
	topMargin    = 20.0
	leftWidth    = 160.0
	barHeight    = 20.0
	barMargin    = 3.0
	labelMargin  = 8.0
	bottomHeight = 30.0
)

// step picks a grid spacing giving roughly five vertical lines up to mx.
func step(mx float64) float64 {
	if mx <= 0 {
		return 1
	}
	p := math.Pow(10, math.Floor(math.Log10(mx/5)))
	for _, m := range []float64{1, 2, 5, 10} {
		if mx/(m*p) <= 6 {
			return m * p
		}
	}
	return 10 * p
}

func (c *chart) svg(dark bool) string {
	var mx float64
	for i := range c.Entries {
		mx = max(mx, c.Entries[i].Value)
	}
	if c.Step <= 0 {
		c.Step = step(mx)
	}
	rightWidth := chartWidth - leftWidth
	topHeight := float64(len(c.Entries)) * barHeight
	height := topMargin + topHeight + bottomHeight
	scale := 1.0
	if mx > 0 {
		scale = (rightWidth - 100) / mx
	}
	var textFill string
	if dark {
		textFill = ` fill="#C9D1D9"`
	}

	var o strings.Builder
	fmt.Fprintf(&o, `<svg width="%v" height="%v" fill="black" font-family="sans-serif" font-size="13px" xmlns="http://www.w3.org/2000/svg">`+"\n", chartWidth, height)

	// grid
	for i := 0.0; i*scale < rightWidth; i += c.Step {
		fmt.Fprintf(&o, `  <rect x="%v" y="%v" width="1" height="%v" fill="#7F7F7F" fill-opacity="0.25"/>`+"\n",
			leftWidth+i*scale, topMargin, topHeight)
	}

	for i := range c.Entries {
		e := &c.Entries[i]
		y := topMargin + barHeight*float64(i)
		w := e.Value * scale
		var bold string
		if i == 0 {
			bold = ` font-weight="bold"`
		}
		fmt.Fprintf(&o, `  <rect x="%v" y="%v" width="%v" height="%v" fill="#FFCF00"/>`+"\n",
			leftWidth, y+barMargin, w, barHeight-2*barMargin)
		fmt.Fprintf(&o, `  <text x="%v" y="%v" text-anchor="end" dominant-baseline="middle"%v%v>%v</text>`+"\n",
			leftWidth-labelMargin, y+barHeight/2, bold, textFill, e.Name)
		fmt.Fprintf(&o, `  <text x="%v" y="%v" dominant-baseline="middle"%v%v>%.1f%v</text>`+"\n",
			leftWidth+labelMargin+w, y+barHeight/2, bold, textFill, e.Value, c.Unit)
	}

	// axis labels
	for i := 0.0; i*scale < rightWidth; i += c.Step {
		fmt.Fprintf(&o, `  <text x="%v" y="%v" text-anchor="middle" dominant-baseline="hanging"%v>%v%v</text>`+"\n",
			leftWidth+i*scale, topMargin+topHeight+labelMargin/2, textFill, i, c.Unit)
	}
	o.WriteString(`</svg>`)
	return o.String()
}
