package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/san-kum/loaninvest/internal/cache"
	"github.com/san-kum/loaninvest/internal/config"
	"github.com/san-kum/loaninvest/internal/sim"
	"go.uber.org/zap"
)

type ApiHandler struct {
	// NewCache returns the evaluation cache for one request. When nil every
	// request gets its own in-memory cache.
	NewCache func() cache.Cache
	Log      *zap.SugaredLogger
	Workers  int
}

func (h ApiHandler) logger() *zap.SugaredLogger {
	if h.Log == nil {
		return zap.NewNop().Sugar()
	}
	return h.Log
}

func (h ApiHandler) requestCache() cache.Cache {
	if h.NewCache == nil {
		return cache.NewMemory()
	}
	return h.NewCache()
}

func (h ApiHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(h.logRequestMiddleware)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/presets", h.presets)
	router.POST("/simulate", h.simulate)
	router.POST("/optimize", h.optimize)

	return router
}

func (h ApiHandler) StartApi(port int) error {
	h.logger().Infow("starting api", "port", port, "shared_cache", h.NewCache != nil)
	return h.Router().Run(fmt.Sprintf(":%d", port))
}

func (h ApiHandler) logRequestMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.logger().Infow("request",
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sim.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, sim.ErrInfeasibleOptimization):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (h ApiHandler) returnErrorJson(err error, c *gin.Context) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger().Errorw("request failed", "route", c.Request.URL.Path, "error", err)
	}
	returnErrorJsonCode(err, c, code)
}

// scenarioRequest mirrors the YAML config. Unset fields fall back to the
// preset, then to the defaults.
type scenarioRequest struct {
	Preset            string   `json:"preset"`
	LoanAmount        *float64 `json:"loan_amount"`
	LoanRatePct       *float64 `json:"loan_rate_pct"`
	InvestRatePct     *float64 `json:"invest_rate_pct"`
	MaxMonthlyPayment *float64 `json:"max_monthly_payment"`
	Years             *int     `json:"years"`
}

func (r scenarioRequest) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if r.Preset != "" {
		p, err := lookupPreset(r.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if r.LoanAmount != nil {
		cfg.LoanAmount = *r.LoanAmount
	}
	if r.LoanRatePct != nil {
		cfg.LoanRatePct = *r.LoanRatePct
	}
	if r.InvestRatePct != nil {
		cfg.InvestRatePct = *r.InvestRatePct
	}
	if r.MaxMonthlyPayment != nil {
		cfg.MaxMonthlyPayment = *r.MaxMonthlyPayment
	}
	if r.Years != nil {
		cfg.Years = *r.Years
	}
	return cfg, nil
}
