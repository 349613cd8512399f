package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/loaninvest/internal/metrics"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/san-kum/loaninvest/internal/storage"
	"github.com/shopspring/decimal"
)

type simulateRequest struct {
	scenarioRequest
	MonthlyLoanPayment *float64 `json:"monthly_loan_payment"`
}

type simulateResponse struct {
	storage.ExportData
	MinPayment decimal.Decimal `json:"min_payment"`
	Payoff     string          `json:"payoff"`
}

func (h ApiHandler) simulate(c *gin.Context) {
	var requestBody simulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}

	cfg, err := requestBody.config()
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}

	sc := cfg.Scenario()
	var split sim.Split
	if requestBody.MonthlyLoanPayment != nil {
		split = sim.NewSplit(decimal.NewFromFloat(*requestBody.MonthlyLoanPayment).Round(2))
	} else {
		best, err := optim.FindOptimalSplit(c.Request.Context(), sc, h.sweepOptions(cfg.Step())...)
		if err != nil {
			h.returnErrorJson(err, c)
			return
		}
		split = best.Best
	}

	s := sim.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	res, err := s.Run(c.Request.Context(), sc, split)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}

	out := simulateResponse{
		ExportData: storage.NewExportData(cfg.Name, res),
		Payoff:     sim.PayoffLabel(res.Summary, sc.Months()),
	}
	if p, err := sim.MinimumPayment(sc); err == nil {
		out.MinPayment = p
	}
	c.JSON(http.StatusOK, out)
}
