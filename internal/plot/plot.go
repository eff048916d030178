// Package plot renders trajectories as terminal charts, SVG documents,
// and small self-contained HTML reports.
package plot

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odelab/internal/vec"
)

// Component extracts one state component as a plain series.
func Component(states []vec.VecN, idx int) ([]float64, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("plot: no samples")
	}
	if idx < 0 || idx >= len(states[0]) {
		return nil, fmt.Errorf("plot: component %d out of range, state has %d", idx, len(states[0]))
	}
	out := make([]float64, len(states))
	for i, s := range states {
		out[i] = s[idx]
	}
	return out, nil
}

// Ascii renders one component as a terminal line chart.
func Ascii(states []vec.VecN, idx int, caption string) (string, error) {
	series, err := Component(states, idx)
	if err != nil {
		return "", err
	}
	return AsciiSeries(series, caption), nil
}

// AsciiSeries renders a raw series as a terminal line chart.
func AsciiSeries(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// Line is one named series in an SVG plot.
type Line struct {
	Name string
	X    []float64
	Y    []float64
}

// TimeSeries builds a Line of one component against time.
func TimeSeries(times []float64, states []vec.VecN, idx int) (Line, error) {
	series, err := Component(states, idx)
	if err != nil {
		return Line{}, err
	}
	return Line{Name: fmt.Sprintf("x%d", idx), X: times, Y: series}, nil
}

// Phase builds a Line of one component against another.
func Phase(states []vec.VecN, xIdx, yIdx int) (Line, error) {
	xs, err := Component(states, xIdx)
	if err != nil {
		return Line{}, err
	}
	ys, err := Component(states, yIdx)
	if err != nil {
		return Line{}, err
	}
	return Line{Name: fmt.Sprintf("x%d vs x%d", xIdx, yIdx), X: xs, Y: ys}, nil
}

// Scatter renders points as a framed ASCII scatter plot. Point
// characters age with sample order so orbits show their direction.
func Scatter(xs, ys []float64, width, height int) string {
	if len(xs) == 0 || len(xs) != len(ys) || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if ys[i] < minY {
			minY = ys[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	for i := range xs {
		px := int(float64(width-1) * (xs[i] - minX) / rangeX)
		py := height - 1 - int(float64(height-1)*(ys[i]-minY)/rangeY)
		if px < 0 || px >= width || py < 0 || py >= height {
			continue
		}
		switch {
		case i < len(xs)/3:
			canvas[py][px] = '.'
		case i < 2*len(xs)/3:
			canvas[py][px] = 'o'
		default:
			canvas[py][px] = '#'
		}
	}

	var sb strings.Builder
	border := strings.Repeat("-", width)
	sb.WriteString(fmt.Sprintf("%10.3g +%s+\n", maxY, border))
	for i := range canvas {
		if i == height/2 {
			sb.WriteString(fmt.Sprintf("%10.3g |", (maxY+minY)/2))
		} else {
			sb.WriteString(strings.Repeat(" ", 11) + "|")
		}
		sb.WriteString(string(canvas[i]))
		sb.WriteString("|\n")
	}
	sb.WriteString(fmt.Sprintf("%10.3g +%s+\n", minY, border))
	gap := width - 10
	if gap < 1 {
		gap = 1
	}
	sb.WriteString(fmt.Sprintf("%12.3g%s%.3g\n", minX, strings.Repeat(" ", gap), maxX))
	sb.WriteString("\nlegend: . = early, o = middle, # = late\n")
	return sb.String()
}

var palette = []string{"#00ff00", "#00bfff", "#ff6b6b", "#ffd93d"}

// SVG renders the lines as paths over a dark background, with shared
// bounds padded by 10%.
func SVG(lines []Line, width, height int) string {
	if len(lines) == 0 || len(lines[0].X) < 2 {
		return ""
	}

	minX, maxX := lines[0].X[0], lines[0].X[0]
	minY, maxY := lines[0].Y[0], lines[0].Y[0]
	for _, line := range lines {
		for i := range line.X {
			if line.X[i] < minX {
				minX = line.X[i]
			}
			if line.X[i] > maxX {
				maxX = line.X[i]
			}
			if line.Y[i] < minY {
				minY = line.Y[i]
			}
			if line.Y[i] > maxY {
				maxY = line.Y[i]
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for li, line := range lines {
		color := palette[li%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i := range line.X {
			x := (line.X[i] - minX) / rangeX * float64(width)
			y := float64(height) - (line.Y[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// HTML wraps an SVG plot in a minimal standalone page.
func HTML(title, svg string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString(fmt.Sprintf("<meta charset=\"utf-8\">\n<title>%s</title>\n", title))
	sb.WriteString("<style>body{background:#111;color:#ddd;font-family:monospace;margin:2em}</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	sb.WriteString(svg)
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
