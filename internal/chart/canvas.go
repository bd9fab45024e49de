package chart

import (
	"sync"

	"github.com/smallbiznis/agritatva/internal/observation/domain"
)

// Canvas holds the single live chart instance of a session.
type Canvas struct {
	mu         sync.RWMutex
	current    Scatter
	generation uint64
}

func NewCanvas() *Canvas {
	return &Canvas{current: Build(nil)}
}

// Redraw discards the current chart and builds a new one from observations.
func (c *Canvas) Redraw(observations []domain.FieldObservation) Scatter {
	next := Build(observations)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = next
	c.generation++
	return next
}

// Current returns the live chart and how many times it has been rebuilt.
func (c *Canvas) Current() (Scatter, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.generation
}

// Clear drops the chart without counting a redraw.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Build(nil)
}
