// Package analysis sweeps one scenario parameter and records how the
// optimal split responds.
//
//   - [Sensitivity]: optimizer outcome for each value of a parameter
//   - [Crossover]: first value where the optimum leaves the minimum payment
//   - [SensitivityToASCII]: compact text plot of the optimal payment
//
// # Example
//
//	points, err := analysis.Sensitivity(ctx, cfg, analysis.InvestRate, 2, 10, 9, sweep)
//	if x, ok := analysis.Crossover(points); ok {
//	    fmt.Printf("paying down the loan wins below %.2f%%\n", x)
//	}
package analysis
