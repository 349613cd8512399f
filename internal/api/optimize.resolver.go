package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/shopspring/decimal"
)

type optimizeRequest struct {
	scenarioRequest
	Step *float64 `json:"step"`
}

func (h ApiHandler) optimize(c *gin.Context) {
	var requestBody optimizeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}

	cfg, err := requestBody.config()
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}

	step := cfg.Step()
	if requestBody.Step != nil {
		step = decimal.NewFromFloat(*requestBody.Step)
	}

	out, err := optim.FindOptimalSplit(c.Request.Context(), cfg.Scenario(), h.sweepOptions(step)...)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) sweepOptions(step decimal.Decimal) []optim.Option {
	return []optim.Option{
		optim.WithStep(step),
		optim.WithWorkers(max(h.Workers, 1)),
		optim.WithLogger(h.logger()),
		optim.WithCache(h.requestCache()),
	}
}
