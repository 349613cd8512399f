// Package export renders results as standalone SVG line charts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
)

type Point struct{ X, Y float64 }

type Line struct {
	Label  string
	Stroke string
	Points []Point
}

const (
	background = "#0a0a0a"
	axisColor  = "#444466"
	textColor  = "#cccccc"
	padding    = 40.0
)

// LinesToSVG draws every line on shared axes. Lines with fewer than two
// points are skipped.
func LinesToSVG(lines []Line, width, height int, title string) string {
	minX, maxX, minY, maxY, ok := bounds(lines)
	if !ok {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeY = maxY - minY

	plotW := float64(width) - 2*padding
	plotH := float64(height) - 2*padding
	px := func(x float64) float64 { return padding + (x-minX)/rangeX*plotW }
	py := func(y float64) float64 { return padding + plotH - (y-minY)/rangeY*plotH }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="14">%s</text>
`, padding, padding/2, textColor, escape(title))

	// zero line
	if minY < 0 && maxY > 0 {
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4 4"/>
`, padding, py(0), padding+plotW, py(0), axisColor)
	}
	fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, padding, padding, plotW, plotH, axisColor)
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="10">%.0f</text>
<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="10">%.0f</text>
`, 2.0, py(maxY)+10, textColor, maxY, 2.0, py(minY), textColor, minY)

	legendY := float64(height) - padding/3
	legendX := padding
	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, l.Stroke)
		for i, p := range l.Points {
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", px(p.X), py(p.Y))
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", px(p.X), py(p.Y))
			}
		}
		sb.WriteString("\"/>\n")

		if l.Label != "" {
			fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="11">%s</text>
`, legendX, legendY, l.Stroke, escape(l.Label))
			legendX += float64(len(l.Label))*7 + 20
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func bounds(lines []Line) (minX, maxX, minY, maxY float64, ok bool) {
	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		for _, p := range l.Points {
			if !ok {
				minX, maxX, minY, maxY, ok = p.X, p.X, p.Y, p.Y, true
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// BalancesSVG charts loan, investment and net worth by month.
func BalancesSVG(res *sim.Result, width, height int) string {
	loan := Line{Label: "loan", Stroke: "#ff5f5f"}
	invest := Line{Label: "investment", Stroke: "#5fff87"}
	nw := Line{Label: "net worth", Stroke: "#00ccff"}
	for _, s := range res.Snapshots {
		x := float64(s.Month)
		loan.Points = append(loan.Points, Point{x, s.LoanBalance.InexactFloat64()})
		invest.Points = append(invest.Points, Point{x, s.InvestmentBalance.InexactFloat64()})
		nw.Points = append(nw.Points, Point{x, s.NetWorth.InexactFloat64()})
	}
	title := fmt.Sprintf("loan payment %s/mo", res.Split.MonthlyLoanPayment.StringFixed(2))
	return LinesToSVG([]Line{loan, invest, nw}, width, height, title)
}

// CurveSVG charts final net worth against the monthly loan payment.
func CurveSVG(o *optim.Outcome, width, height int) string {
	curve := Line{Label: "final net worth", Stroke: "#00ccff"}
	for _, p := range o.Curve {
		curve.Points = append(curve.Points, Point{p.Payment.InexactFloat64(), p.NetWorth.InexactFloat64()})
	}
	title := fmt.Sprintf("best payment %s/mo", o.Best.MonthlyLoanPayment.StringFixed(2))
	return LinesToSVG([]Line{curve}, width, height, title)
}

func WriteSVG(w io.Writer, svg string) error {
	if svg == "" {
		return fmt.Errorf("nothing to draw")
	}
	_, err := io.WriteString(w, svg)
	return err
}
