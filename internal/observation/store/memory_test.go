package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPreservesSubmissionOrder(t *testing.T) {
	s := NewMemory()

	for i := 0; i < 25; i++ {
		idx := s.Append(domain.FieldObservation{
			FieldName:  fmt.Sprintf("field-%d", i),
			WaterUsage: float64(i * 10),
		})
		assert.Equal(t, i, idx)
	}

	all := s.All()
	require.Len(t, all, 25)
	assert.Equal(t, 25, s.Len())
	for i, obs := range all {
		assert.Equal(t, fmt.Sprintf("field-%d", i), obs.FieldName)
	}
}

func TestMemoryAllowsDuplicateFieldNames(t *testing.T) {
	s := NewMemory()
	s.Append(domain.FieldObservation{FieldName: "North", WaterUsage: 1})
	s.Append(domain.FieldObservation{FieldName: "North", WaterUsage: 2})

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, 1.0, all[0].WaterUsage)
	assert.Equal(t, 2.0, all[1].WaterUsage)
}

func TestMemoryAllReturnsCopy(t *testing.T) {
	s := NewMemory()
	s.Append(domain.FieldObservation{FieldName: "North"})

	view := s.All()
	view[0].FieldName = "mutated"

	assert.Equal(t, "North", s.All()[0].FieldName)
}

func TestMemoryReset(t *testing.T) {
	s := NewMemory()
	s.Append(domain.FieldObservation{FieldName: "North"})
	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
}

func TestMemoryConcurrentAppends(t *testing.T) {
	s := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(domain.FieldObservation{FieldName: "f"})
			_ = s.All()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
