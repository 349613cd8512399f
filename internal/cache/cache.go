// Package cache memoizes simulation outcomes for a single optimizer call.
package cache

import (
	"fmt"
	"sync"

	"github.com/san-kum/loaninvest/internal/sim"
)

type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Key identifies one (scenario, split) evaluation. Money is keyed in cents,
// the precision the simulator runs at; rates keep every digit.
func Key(sc sim.Scenario, split sim.Split) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d|%s",
		sc.LoanAmount.StringFixed(2),
		sc.LoanRate.String(),
		sc.InvestRate.String(),
		sc.MaxMonthlyPayment.StringFixed(2),
		sc.Years,
		split.MonthlyLoanPayment.StringFixed(2),
	)
}

type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
