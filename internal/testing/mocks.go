package testing

import (
	"context"
	"sync"
)

// MockRateProvider is a benchmark rate provider that records its calls
type MockRateProvider struct {
	mu    sync.Mutex
	rate  float64
	calls int
}

// NewMockRateProvider creates a provider returning rate
func NewMockRateProvider(rate float64) *MockRateProvider {
	return &MockRateProvider{rate: rate}
}

// SetRate changes the rate returned by subsequent calls
func (m *MockRateProvider) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}

// CurrentRate implements fixedincome.BenchmarkRateProvider
func (m *MockRateProvider) CurrentRate(context.Context) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.rate
}

// Calls returns how many times the rate was requested
func (m *MockRateProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockJob is a scheduler job that counts its runs
type MockJob struct {
	mu   sync.Mutex
	name string
	err  error
	runs int
}

// NewMockJob creates a job named name that returns err from every run
func NewMockJob(name string, err error) *MockJob {
	return &MockJob{name: name, err: err}
}

// Run implements scheduler.Job
func (m *MockJob) Run() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	return m.err
}

// Name implements scheduler.Job
func (m *MockJob) Name() string {
	return m.name
}

// Runs returns how many times the job ran
func (m *MockJob) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}
