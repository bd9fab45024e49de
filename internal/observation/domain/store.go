package domain

// Store is the ordered, append-only log of observations for one session.
// Insertion order is the chart index; there is no update or delete.
type Store interface {
	// Append adds obs at the end and returns its 0-based index.
	Append(obs FieldObservation) int
	// All returns a copy of every observation in insertion order.
	All() []FieldObservation
	Len() int
	// Reset drops every observation. Only session teardown calls it.
	Reset()
}
