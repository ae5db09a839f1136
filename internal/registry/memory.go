package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

// Memory is an in-process Registry used in tests.
type Memory struct {
	mu    sync.Mutex
	codes map[string]model.VipCode

	// UpdateCalls counts merge writes, letting tests assert that denied
	// operations performed no registry write.
	UpdateCalls int
	// BindCalls counts bind attempts.
	BindCalls int
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{codes: make(map[string]model.VipCode)}
}

// Seed inserts a code directly, bypassing call counters.
func (m *Memory) Seed(c model.VipCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[c.Code] = c
}

func (m *Memory) Get(_ context.Context, code string) (*model.VipCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) Create(_ context.Context, c model.VipCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[c.Code] = c
	return nil
}

func (m *Memory) Update(_ context.Context, code string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	c := m.codes[code]
	c.Code = code
	for k, v := range fields {
		switch k {
		case "predictions":
			c.Predictions = v.(int)
		case "usedPredictions":
			c.UsedPredictions = v.(int)
		case "active":
			c.Active = v.(bool)
		case "assignedTo":
			c.AssignedTo = v.(string)
		case "createdAt":
			c.CreatedAt = v.(int64)
		}
	}
	m.codes[code] = c
	return nil
}

func (m *Memory) Bind(_ context.Context, code, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BindCalls++
	c, ok := m.codes[code]
	if !ok {
		return ErrNotFound
	}
	if c.AssignedTo != "" && c.AssignedTo != deviceID {
		return ErrAlreadyBound
	}
	c.AssignedTo = deviceID
	m.codes[code] = c
	return nil
}

func (m *Memory) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, code)
	return nil
}

func (m *Memory) List(_ context.Context) ([]model.VipCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.VipCode, 0, len(m.codes))
	for _, c := range m.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
