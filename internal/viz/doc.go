// Package viz renders simulation results for the terminal: lipgloss panels
// for summaries and asciigraph charts for the monthly balances and the
// optimizer curve.
package viz
