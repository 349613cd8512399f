// Package tui is an interactive slider over the monthly loan payment. Each
// move re-runs the simulation and redraws the summary and chart.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/report"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/san-kum/loaninvest/internal/viz"
	"github.com/shopspring/decimal"
)

const (
	sliderWidth = 40
	coarseSteps = 10
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type Model struct {
	scenario sim.Scenario
	payment  decimal.Decimal
	step     decimal.Decimal
	sweep    *optim.Sweep

	result  *sim.Result
	minimum decimal.Decimal
	optimal *optim.Outcome
	err     error

	width  int
	height int
}

// New starts the slider at payment. The sweep is used for the "jump to
// optimal" key and may be nil.
func New(sc sim.Scenario, payment, step decimal.Decimal, sweep *optim.Sweep) Model {
	if sweep == nil {
		sweep = optim.NewSweep(optim.WithStep(step))
	}
	m := Model{
		scenario: sc,
		payment:  payment,
		step:     step,
		sweep:    sweep,
		width:    80,
		height:   24,
	}
	if p, err := sim.MinimumPayment(sc); err == nil {
		m.minimum = p
	}
	m.simulate()
	return m
}

func (m Model) Payment() decimal.Decimal { return m.payment }
func (m Model) Result() *sim.Result      { return m.result }
func (m Model) Err() error               { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.move(m.step.Neg())
	case "right", "l":
		m.move(m.step)
	case "down", "j":
		m.move(m.step.Mul(decimal.NewFromInt(coarseSteps)).Neg())
	case "up", "k":
		m.move(m.step.Mul(decimal.NewFromInt(coarseSteps)))
	case "m":
		if m.minimum.IsPositive() {
			m.payment = decimal.Min(m.minimum, m.scenario.MaxMonthlyPayment)
			m.simulate()
		}
	case "o":
		m.jumpToOptimal()
	}
	return m, nil
}

func (m *Model) move(delta decimal.Decimal) {
	p := m.payment.Add(delta)
	p = decimal.Max(p, decimal.Zero)
	p = decimal.Min(p, m.scenario.MaxMonthlyPayment)
	if p.Equal(m.payment) {
		return
	}
	m.payment = p
	m.simulate()
}

func (m *Model) jumpToOptimal() {
	if m.optimal == nil {
		o, err := m.sweep.Run(context.Background(), m.scenario)
		if err != nil {
			m.err = err
			return
		}
		m.optimal = o
	}
	m.payment = m.optimal.Best.MonthlyLoanPayment
	m.simulate()
}

func (m *Model) simulate() {
	res, err := sim.Simulate(m.scenario, sim.NewSplit(m.payment))
	if err != nil {
		m.err = err
		return
	}
	m.result = res
	m.err = nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("loan vs. invest"))
	b.WriteString(dim.Render(fmt.Sprintf("  budget %s/mo", report.FormatMoneyFull(m.scenario.MaxMonthlyPayment))))
	b.WriteString("\n\n")
	b.WriteString(m.slider())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(red.Render("error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.result != nil {
		b.WriteString(viz.SummaryPanel(m.result))
		b.WriteString("\n")
		chartWidth := max(m.width-12, 20)
		chartHeight := max(m.height-22, 5)
		b.WriteString(viz.Chart(m.result, viz.SeriesNetWorth, chartWidth, chartHeight))
		b.WriteString("\n")
	}

	if m.optimal != nil {
		b.WriteString(yellow.Render(fmt.Sprintf("optimal %s -> %s",
			report.FormatMoneyFull(m.optimal.Best.MonthlyLoanPayment),
			report.FormatMoneyFull(m.optimal.BestNetWorth))))
		b.WriteString("\n")
	}

	b.WriteString(viz.KeyHint("←/→ step  ↑/↓ x10  m minimum  o optimal  q quit"))
	return b.String()
}

func (m Model) slider() string {
	budget := m.scenario.MaxMonthlyPayment
	pos := 0
	if budget.IsPositive() {
		pos = int(m.payment.Div(budget).InexactFloat64() * sliderWidth)
	}
	pos = max(0, min(pos, sliderWidth))

	track := make([]rune, sliderWidth+1)
	for i := range track {
		track[i] = '─'
	}
	if m.minimum.IsPositive() && m.minimum.LessThanOrEqual(budget) {
		mi := int(m.minimum.Div(budget).InexactFloat64() * sliderWidth)
		track[max(0, min(mi, sliderWidth))] = '┊'
	}
	track[pos] = '●'

	return fmt.Sprintf("%s %s %s",
		dim.Render("$0"),
		yellow.Render(string(track)),
		cyan.Render(report.FormatMoneyFull(m.payment)+" to loan"),
	)
}

// Run blocks until the user quits and returns the final model.
func Run(m Model) (Model, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}
