package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/agritatva/internal/chart"
	"github.com/smallbiznis/agritatva/internal/observation/domain"
)

// Session owns the observation log and the live chart for the lifetime of the
// process. Every submission appends and then rebuilds the chart under one
// lock, so the chart always reflects the whole log.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu     sync.Mutex
	store  domain.Store
	canvas *chart.Canvas
	closed bool
}

// Snapshot is a consistent read of the log and the chart built from it.
type Snapshot struct {
	SessionID    string
	Observations []domain.FieldObservation
	Chart        chart.Scatter
	Generation   uint64
}

func New(store domain.Store, canvas *chart.Canvas, startedAt time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: startedAt,
		store:     store,
		canvas:    canvas,
	}
}

// Submit appends obs, redraws the chart and returns the observation index.
func (s *Session) Submit(obs domain.FieldObservation) (int, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.store.Append(obs)
	s.canvas.Redraw(s.store.All())
	_, gen := s.canvas.Current()
	return idx, gen
}

func (s *Session) Observations() []domain.FieldObservation {
	return s.store.All()
}

func (s *Session) Chart() (chart.Scatter, uint64) {
	return s.canvas.Current()
}

func (s *Session) Len() int {
	return s.store.Len()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	scatter, gen := s.canvas.Current()
	return Snapshot{
		SessionID:    s.ID.String(),
		Observations: s.store.All(),
		Chart:        scatter,
		Generation:   gen,
	}
}

// Close drops every observation and the chart. It is safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.store.Reset()
	s.canvas.Clear()
	s.closed = true
}
