package handlers

import (
	"context"
	"sync"

	"neuronwatch"
	"neuronwatch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	mu      sync.Mutex
	status  service.Status
	neurons []neuronwatch.Neuron
	pulsing []string
}

func (m *mockMonitoring) Status() service.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *mockMonitoring) Neurons() []neuronwatch.Neuron {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]neuronwatch.Neuron(nil), m.neurons...)
}

func (m *mockMonitoring) Pulsing() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.pulsing...)
}

func (m *mockMonitoring) setState(s neuronwatch.ConnState) {
	m.mu.Lock()
	m.status.State = s
	m.mu.Unlock()
}

type mockEventLog struct {
	resp   []neuronwatch.LogEntry
	err    error
	calls  int
	filter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]neuronwatch.LogEntry, error) {
	m.calls++
	m.filter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func strPtr(s string) *string { return &s }
