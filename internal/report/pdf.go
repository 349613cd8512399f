package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 15.0
	contentWidth = 210.0 - marginLeft - marginRight
)

var tableColumns = []struct {
	title string
	width float64
}{
	{"Year", 15},
	{"Loan", 33},
	{"Investment", 33},
	{"Net worth", 33},
	{"Interest", 33},
	{"Invested", 33},
}

// PDF renders a single run and, optionally, the optimizer outcome for the
// same scenario.
type PDF struct {
	pdf     *fpdf.Fpdf
	title   string
	result  *sim.Result
	outcome *optim.Outcome
}

func NewPDF(title string, result *sim.Result, outcome *optim.Outcome) *PDF {
	r := &PDF{
		pdf:     fpdf.New("P", "mm", "A4", ""),
		title:   title,
		result:  result,
		outcome: outcome,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	return r
}

func (r *PDF) Write(w io.Writer) error {
	r.pdf.AddPage()
	r.header()
	r.summary()
	if r.outcome != nil {
		r.optimizer()
	}
	r.yearTable()

	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return r.pdf.Output(w)
}

// WritePDF is the one-shot form of NewPDF(...).Write.
func WritePDF(w io.Writer, title string, result *sim.Result, outcome *optim.Outcome) error {
	return NewPDF(title, result, outcome).Write(w)
}

func (r *PDF) header() {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, r.title, "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *PDF) section(title string) {
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.CellFormat(contentWidth, 8, title, "1", 1, "L", true, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *PDF) pair(label, value string) {
	r.pdf.CellFormat(contentWidth/2, 6, label, "L", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth/2, 6, value, "R", 1, "R", false, 0, "")
}

func (r *PDF) closeBox() {
	r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *PDF) summary() {
	sc, sum := r.result.Scenario, r.result.Summary
	r.section("Scenario")
	r.pair("Loan amount", FormatMoneyFull(sc.LoanAmount))
	r.pair("Loan rate", formatPercent(sc.LoanRate))
	r.pair("Investment return", formatPercent(sc.InvestRate))
	r.pair("Monthly budget", FormatMoneyFull(sc.MaxMonthlyPayment))
	r.pair("Horizon", fmt.Sprintf("%d years", sc.Years))
	r.pair("Loan payment", FormatMoneyFull(r.result.Split.MonthlyLoanPayment))
	r.closeBox()

	r.section("Result")
	r.pair("Final net worth", FormatMoneyFull(sum.FinalNetWorth))
	r.pair("Interest paid", FormatMoneyFull(sum.TotalInterestPaid))
	r.pair("Total invested", FormatMoneyFull(sum.TotalInvested))
	r.pair("Investment gain", FormatMoneyFull(sum.TotalInvestmentGain))
	r.pair("Loan payoff", sim.PayoffLabel(sum, sc.Months()))
	for _, name := range sortedKeys(r.result.Metrics) {
		r.pair(name, fmt.Sprintf("%.4f", r.result.Metrics[name]))
	}
	r.closeBox()
}

func (r *PDF) optimizer() {
	o := r.outcome
	r.section("Optimal split")
	r.pair("Minimum payment", FormatMoneyFull(o.MinPayment))
	r.pair("Optimal payment", FormatMoneyFull(o.Best.MonthlyLoanPayment))
	r.pair("Best net worth", FormatMoneyFull(o.BestNetWorth))
	r.pair("Candidates", fmt.Sprintf("%d", o.Stats.Candidates))
	r.pair("Median net worth", fmt.Sprintf("$%.2f", o.Stats.Median))
	r.closeBox()
}

func (r *PDF) yearTable() {
	r.section("Year by year")
	r.pdf.SetFont("Arial", "B", 9)
	for _, c := range tableColumns {
		r.pdf.CellFormat(c.width, 6, c.title, "1", 0, "C", false, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 9)
	for i, row := range Yearly(r.result.Snapshots) {
		fill := i%2 == 1
		r.pdf.SetFillColor(248, 248, 248)
		cells := []string{
			fmt.Sprintf("%d", row.Year),
			FormatMoneyFull(row.LoanBalance),
			FormatMoneyFull(row.InvestmentBalance),
			FormatMoneyFull(row.NetWorth),
			FormatMoneyFull(row.InterestPaid),
			FormatMoneyFull(row.Contributions),
		}
		for j, c := range tableColumns {
			r.pdf.CellFormat(c.width, 5, cells[j], "LR", 0, "R", fill, 0, "")
		}
		r.pdf.Ln(-1)
	}
	r.pdf.CellFormat(contentWidth, 0, "", "T", 1, "", false, 0, "")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
