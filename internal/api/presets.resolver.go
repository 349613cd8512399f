package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/loaninvest/internal/config"
	"github.com/san-kum/loaninvest/internal/sim"
)

type presetResponse struct {
	Name   string         `json:"name"`
	Config *config.Config `json:"config"`
}

func lookupPreset(name string) (*config.Config, error) {
	scenario, preset, ok := strings.Cut(name, "/")
	if !ok {
		preset = "standard"
	}
	cfg := config.GetPreset(scenario, preset)
	if cfg == nil {
		return nil, &sim.InputError{Field: "preset", Message: fmt.Sprintf("unknown preset %q", name)}
	}
	return cfg, nil
}

func (h ApiHandler) presets(c *gin.Context) {
	out := []presetResponse{}
	for _, scenario := range config.ListScenarios() {
		for _, name := range config.ListPresets(scenario) {
			out = append(out, presetResponse{
				Name:   scenario + "/" + name,
				Config: config.GetPreset(scenario, name),
			})
		}
	}
	c.JSON(http.StatusOK, out)
}
