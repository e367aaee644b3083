package session

import "time"

// BaselineStore holds zero or one reference feature vector. The store
// provides no locking; concurrent sessions sharing one store must
// serialize saves and compares externally.
type BaselineStore struct {
	features []float64
	savedAt  time.Time
}

// NewBaselineStore creates an empty store
func NewBaselineStore() *BaselineStore {
	return &BaselineStore{}
}

// Save stores a copy of the feature vector, overwriting any previous
// baseline
func (s *BaselineStore) Save(features []float64) {
	stored := make([]float64, len(features))
	copy(stored, features)
	s.features = stored
	s.savedAt = time.Now()
}

// Load returns the stored feature vector and whether one exists
func (s *BaselineStore) Load() ([]float64, bool) {
	if s.features == nil {
		return nil, false
	}
	return s.features, true
}

// SavedAt returns when the baseline was stored
func (s *BaselineStore) SavedAt() time.Time {
	return s.savedAt
}

// Clear removes the stored baseline
func (s *BaselineStore) Clear() {
	s.features = nil
	s.savedAt = time.Time{}
}
