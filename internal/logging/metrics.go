package logging

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"rackiam/internal/domain"
)

// Metrics tracks rendered resources and operation outcomes
type Metrics struct {
	StartTime      time.Time                   `json:"start_time"`
	Resources      map[string]int              `json:"resources"`
	Operations     map[string]OperationMetrics `json:"operations"`
	TotalResources int                         `json:"total_resources"`
	TotalFailures  int                         `json:"total_failures"`
	mu             sync.RWMutex
}

// OperationMetrics tracks metrics for high-level operations
type OperationMetrics struct {
	Duration       time.Duration `json:"duration"`
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`
	ItemsProcessed int           `json:"items_processed"`
}

var globalMetrics *Metrics
var metricsOnce sync.Once

// GetMetrics returns the global metrics instance (singleton)
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = newMetrics()
	})
	return globalMetrics
}

func newMetrics() *Metrics {
	return &Metrics{
		StartTime:  time.Now(),
		Resources:  make(map[string]int),
		Operations: make(map[string]OperationMetrics),
	}
}

// RecordResource counts a rendered resource of the given type
func (m *Metrics) RecordResource(resourceType domain.ResourceType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Resources[string(resourceType)]++
	m.TotalResources++
}

// RecordOperation records a high-level operation
func (m *Metrics) RecordOperation(operationName string, duration time.Duration, success bool, itemsProcessed int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	opMetrics := OperationMetrics{
		Duration:       duration,
		Success:        success,
		ItemsProcessed: itemsProcessed,
	}
	if err != nil {
		opMetrics.Error = err.Error()
	}
	if !success {
		m.TotalFailures++
	}
	m.Operations[operationName] = opMetrics
}

// ResourceCount returns how many resources of a type were rendered
func (m *Metrics) ResourceCount(resourceType domain.ResourceType) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Resources[string(resourceType)]
}

// Summary returns a human readable summary of the metrics
func (m *Metrics) Summary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Rendered %d resources in %s\n", m.TotalResources, time.Since(m.StartTime).Round(time.Millisecond))

	types := make([]string, 0, len(m.Resources))
	for t := range m.Resources {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(&b, "  %-32s %d\n", t, m.Resources[t])
	}

	if m.TotalFailures > 0 {
		fmt.Fprintf(&b, "Failed operations: %d\n", m.TotalFailures)
	}
	return b.String()
}
