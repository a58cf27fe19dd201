package usecase

import (
	"fmt"
	"sync"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/pkg/metrics"
)

// FilterSelection owns the FilterSet of one screen. Readers only ever get
// immutable values.
type FilterSelection struct {
	mu      sync.Mutex
	current domain.FilterSet
	allowed func(id int64) bool
}

// NewFilterSelection restricts toggles to ids accepted by allowed.
func NewFilterSelection(allowed func(id int64) bool) *FilterSelection {
	return &FilterSelection{allowed: allowed}
}

// Toggle flips id and returns the new set.
func (f *FilterSelection) Toggle(id int64) (domain.FilterSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// removing is always allowed so a set can never get stuck
	if !f.current.Contains(id) && f.allowed != nil && !f.allowed(id) {
		return f.current, fmt.Errorf("%w: %d", domain.ErrUnknownCategory, id)
	}

	f.current = f.current.Toggle(id)
	metrics.FilterToggles.Inc()
	return f.current, nil
}

func (f *FilterSelection) Current() domain.FilterSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Clear empties the selection when the screen is left.
func (f *FilterSelection) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = domain.FilterSet{}
}
