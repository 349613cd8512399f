// Package sim simulates paying down a fixed-rate loan while investing the
// rest of a fixed monthly budget.
//
//   - [Scenario]: loan amount, annual rates, monthly budget and horizon
//   - [Split]: how much of the budget goes to the loan each month
//   - [Simulator]: runs a scenario and emits one [Snapshot] per month
//   - [MinimumPayment]: smallest payment that clears the loan in time
//
// # Example
//
//	sc := sim.Scenario{
//	    LoanAmount:        decimal.NewFromInt(10000),
//	    LoanRate:          decimal.RequireFromString("0.06"),
//	    InvestRate:        decimal.RequireFromString("0.08"),
//	    MaxMonthlyPayment: decimal.NewFromInt(300),
//	    Years:             5,
//	}
//	res, _ := sim.Simulate(sc, sim.NewSplit(decimal.NewFromInt(250)))
//	fmt.Println(res.Summary.FinalNetWorth)
//
// Once the loan reaches zero the whole budget is invested, including the
// unused remainder of the payoff month's loan payment.
package sim
