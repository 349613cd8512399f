package optim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/loaninvest/internal/cache"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func finalNetWorth(sc sim.Scenario, payment decimal.Decimal) decimal.Decimal {
	res, err := sim.Simulate(sc, sim.NewSplit(payment))
	Expect(err).NotTo(HaveOccurred())
	return res.Summary.FinalNetWorth
}

var _ = Describe("Sweep", func() {
	var (
		ctx context.Context
		sc  sim.Scenario
	)

	BeforeEach(func() {
		ctx = context.Background()
		sc = sim.Scenario{
			LoanAmount:        d("10000"),
			LoanRate:          d("0.06"),
			InvestRate:        d("0.08"),
			MaxMonthlyPayment: d("300"),
			Years:             5,
		}
	})

	Context("when the split is feasible", func() {
		It("beats or matches both boundary splits", func() {
			out, err := optim.FindOptimalSplit(ctx, sc, optim.WithStep(d("1")))
			Expect(err).NotTo(HaveOccurred())

			Expect(out.MinPayment.InexactFloat64()).To(BeNumerically("~", 193.33, 0.02))
			best := out.Best.MonthlyLoanPayment
			Expect(best.GreaterThanOrEqual(out.MinPayment)).To(BeTrue())
			Expect(best.LessThanOrEqual(sc.MaxMonthlyPayment)).To(BeTrue())

			Expect(out.BestNetWorth.GreaterThanOrEqual(finalNetWorth(sc, out.MinPayment))).To(BeTrue())
			Expect(out.BestNetWorth.GreaterThanOrEqual(finalNetWorth(sc, sc.MaxMonthlyPayment))).To(BeTrue())
			Expect(out.BestNetWorth.Equal(finalNetWorth(sc, best))).To(BeTrue())
		})

		It("always evaluates the full budget as the last candidate", func() {
			out, err := optim.FindOptimalSplit(ctx, sc, optim.WithStep(d("50")))
			Expect(err).NotTo(HaveOccurred())

			Expect(out.Curve).NotTo(BeEmpty())
			Expect(out.Curve[0].Payment.Equal(out.MinPayment)).To(BeTrue())
			Expect(out.Curve[len(out.Curve)-1].Payment.Equal(sc.MaxMonthlyPayment)).To(BeTrue())
			Expect(out.Stats.Candidates).To(Equal(len(out.Curve)))
			Expect(out.Stats.Max).To(BeNumerically("~", out.BestNetWorth.InexactFloat64(), 0.001))
			Expect(out.Stats.Min).To(BeNumerically("<=", out.Stats.Median))
		})

		It("prefers paying the loan when it costs more than investing earns", func() {
			sc.LoanRate = d("0.10")
			sc.InvestRate = d("0.02")

			out, err := optim.FindOptimalSplit(ctx, sc, optim.WithStep(d("10")))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Best.MonthlyLoanPayment.Equal(sc.MaxMonthlyPayment)).To(BeTrue())
		})

		It("breaks ties toward the lowest loan payment", func() {
			sc = sim.Scenario{
				LoanAmount:        d("1200"),
				LoanRate:          decimal.Zero,
				InvestRate:        decimal.Zero,
				MaxMonthlyPayment: d("200"),
				Years:             1,
			}

			out, err := optim.FindOptimalSplit(ctx, sc, optim.WithStep(d("25")))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.MinPayment.Equal(d("100"))).To(BeTrue())
			Expect(out.Best.MonthlyLoanPayment.Equal(d("100"))).To(BeTrue())
			Expect(out.BestNetWorth.Equal(d("1200"))).To(BeTrue())
			Expect(out.Stats.StdDev).To(BeZero())
		})

		It("returns the same outcome with parallel workers", func() {
			serial, err := optim.FindOptimalSplit(ctx, sc, optim.WithStep(d("1")))
			Expect(err).NotTo(HaveOccurred())

			parallel, err := optim.FindOptimalSplit(ctx, sc, optim.WithStep(d("1")), optim.WithWorkers(4))
			Expect(err).NotTo(HaveOccurred())

			Expect(parallel.Best.MonthlyLoanPayment.Equal(serial.Best.MonthlyLoanPayment)).To(BeTrue())
			Expect(parallel.BestNetWorth.Equal(serial.BestNetWorth)).To(BeTrue())
			Expect(parallel.Curve).To(HaveLen(len(serial.Curve)))
		})

		It("fills and reuses an explicit cache", func() {
			c := cache.NewMemory()

			first, err := optim.FindOptimalSplit(ctx, sc, optim.WithCache(c))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(len(first.Curve)))

			second, err := optim.FindOptimalSplit(ctx, sc, optim.WithCache(c))
			Expect(err).NotTo(HaveOccurred())
			Expect(second.BestNetWorth.Equal(first.BestNetWorth)).To(BeTrue())
			Expect(c.Len()).To(Equal(len(first.Curve)))
		})
	})

	Context("when no split pays off the loan", func() {
		It("reports infeasibility with the minimum payment", func() {
			sc.MaxMonthlyPayment = d("150")

			_, err := optim.FindOptimalSplit(ctx, sc)
			Expect(errors.Is(err, sim.ErrInfeasibleOptimization)).To(BeTrue())

			var infeasible *optim.InfeasibleError
			Expect(errors.As(err, &infeasible)).To(BeTrue())
			Expect(infeasible.MinPayment.InexactFloat64()).To(BeNumerically("~", 193.33, 0.02))
			Expect(infeasible.Budget.Equal(d("150"))).To(BeTrue())
		})
	})

	Context("when the inputs are invalid", func() {
		It("rejects a zero horizon", func() {
			sc.Years = 0
			_, err := optim.FindOptimalSplit(ctx, sc)
			Expect(errors.Is(err, sim.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects a zero loan", func() {
			sc.LoanAmount = decimal.Zero
			_, err := optim.FindOptimalSplit(ctx, sc)
			Expect(errors.Is(err, sim.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects a non-positive step", func() {
			_, err := optim.FindOptimalSplit(ctx, sc, optim.WithStep(decimal.Zero))
			Expect(errors.Is(err, sim.ErrInvalidInput)).To(BeTrue())
		})
	})
})
