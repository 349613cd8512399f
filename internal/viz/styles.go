package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/loaninvest/internal/report"
	"github.com/san-kum/loaninvest/internal/sim"
)

func panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(0, 2)
}

func title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Title)
}

func label() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func value(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

// KeyHint renders a muted help line.
func KeyHint(text string) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true).Render(text)
}

// SummaryPanel renders the headline numbers of a run in a bordered box.
func SummaryPanel(res *sim.Result) string {
	sc, sum := res.Scenario, res.Summary

	nwColor := CurrentTheme.Good
	if sum.FinalNetWorth.IsNegative() {
		nwColor = CurrentTheme.Bad
	}

	rows := [][2]string{
		{"loan payment", value(CurrentTheme.Loan).Render(report.FormatMoneyFull(res.Split.MonthlyLoanPayment))},
		{"invested", value(CurrentTheme.Investment).Render(report.FormatMoneyFull(res.Split.Investable(sc)))},
		{"net worth", value(nwColor).Render(report.FormatMoneyFull(sum.FinalNetWorth))},
		{"interest paid", value(CurrentTheme.Loan).Render(report.FormatMoneyFull(sum.TotalInterestPaid))},
		{"investment gain", value(CurrentTheme.Investment).Render(report.FormatMoneyFull(sum.TotalInvestmentGain))},
		{"payoff", sim.PayoffLabel(sum, sc.Months())},
	}

	var b strings.Builder
	b.WriteString(title().Render(fmt.Sprintf("%d-year plan", sc.Years)))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(label().Render(fmt.Sprintf("%-16s", r[0])))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	b.WriteString(label().Render("payoff progress "))
	b.WriteString(PayoffBar(res, 20))

	return panel().Render(b.String())
}

// PayoffBar shows how much of the original principal has been repaid.
func PayoffBar(res *sim.Result, width int) string {
	frac := 0.0
	if !res.Scenario.LoanAmount.IsZero() {
		frac = res.Summary.TotalPrincipalPaid.Div(res.Scenario.LoanAmount).InexactFloat64()
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	c := CurrentTheme.Bad
	if res.Summary.PaidOff {
		c = CurrentTheme.Good
	}
	return lipgloss.NewStyle().Foreground(c).Render(bar)
}

// Sparkline squeezes values into width cells of block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		result.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.NetWorth).Render(result.String())
}
