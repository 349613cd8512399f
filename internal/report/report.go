// Package report turns simulation results into yearly tables, text
// summaries and PDF documents.
package report

import (
	"fmt"

	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
)

type YearRow struct {
	Year              int
	LoanBalance       decimal.Decimal
	InvestmentBalance decimal.Decimal
	NetWorth          decimal.Decimal
	InterestPaid      decimal.Decimal
	Contributions     decimal.Decimal
}

// Yearly returns one row per year-end, plus a trailing partial year if the
// horizon is not a whole number of years. Interest and contributions are
// per-year figures.
func Yearly(snapshots []sim.Snapshot) []YearRow {
	rows := make([]YearRow, 0, len(snapshots)/12+1)
	prevInterest, prevContrib := decimal.Zero, decimal.Zero

	for i, s := range snapshots {
		if s.Month%12 != 0 && i != len(snapshots)-1 {
			continue
		}
		rows = append(rows, YearRow{
			Year:              (s.Month + 11) / 12,
			LoanBalance:       s.LoanBalance,
			InvestmentBalance: s.InvestmentBalance,
			NetWorth:          s.NetWorth,
			InterestPaid:      s.InterestPaid.Sub(prevInterest),
			Contributions:     s.Contributions.Sub(prevContrib),
		})
		prevInterest, prevContrib = s.InterestPaid, s.Contributions
	}
	return rows
}

// FormatMoney abbreviates large amounts: $1.25M, $512k, $950.
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	v := d.InexactFloat64()
	switch {
	case v >= 1000000:
		return fmt.Sprintf("%s$%.2fM", sign, v/1000000)
	case v >= 1000:
		return fmt.Sprintf("%s$%.0fk", sign, v/1000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, v)
	}
}

// FormatMoneyFull prints whole cents with thousands separators.
func FormatMoneyFull(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	out := make([]byte, 0, len(whole)+len(whole)/3)
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, whole[i])
	}
	return sign + "$" + string(out) + frac
}

func formatPercent(rate decimal.Decimal) string {
	return rate.Shift(2).StringFixed(2) + "%"
}
