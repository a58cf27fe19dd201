package domain

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSet_ToggleInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		ids := make([]int64, rng.Intn(6))
		for j := range ids {
			ids[j] = int64(rng.Intn(10))
		}
		s := NewFilterSet(ids...)
		x := int64(rng.Intn(10))

		got := s.Toggle(x).Toggle(x)
		assert.True(t, got.Equal(s), "toggle twice of %d on %s gave %s", x, s, got)
	}
}

func TestFilterSet_Toggle(t *testing.T) {
	tests := []struct {
		name     string
		initial  FilterSet
		toggle   int64
		expected []int64
	}{
		{
			name:     "add to empty set",
			initial:  FilterSet{},
			toggle:   2,
			expected: []int64{2},
		},
		{
			name:     "add to non-empty set",
			initial:  NewFilterSet(3, 1),
			toggle:   2,
			expected: []int64{1, 2, 3},
		},
		{
			name:     "remove present id",
			initial:  NewFilterSet(1, 2),
			toggle:   1,
			expected: []int64{2},
		},
		{
			name:     "remove last id leaves empty set",
			initial:  NewFilterSet(5),
			toggle:   5,
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.initial.IDs()
			got := tt.initial.Toggle(tt.toggle)

			assert.Equal(t, tt.expected, got.IDs())
			assert.Equal(t, before, tt.initial.IDs(), "receiver must not change")
		})
	}
}

func TestFilterSet_IDsUniqueRegardlessOfHistory(t *testing.T) {
	s := FilterSet{}
	for _, id := range []int64{2, 1, 2, 2, 1, 3, 1} {
		s = s.Toggle(id)
	}

	assert.Equal(t, []int64{1, 2, 3}, s.IDs())
	assert.Equal(t, "{1,2,3}", s.Key())
}

func TestFilterSet_EmptyValues(t *testing.T) {
	var zero FilterSet

	assert.True(t, zero.IsEmpty())
	assert.True(t, zero.Equal(NewFilterSet()))
	assert.True(t, zero.Equal(NewFilterSet(4).Toggle(4)))
	assert.Equal(t, "{}", zero.Key())
	assert.False(t, zero.Contains(1))
}

func TestFilterSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewFilterSet(7, 2, 7))
	require.NoError(t, err)
	assert.JSONEq(t, `[2,7]`, string(data))

	var s FilterSet
	require.NoError(t, json.Unmarshal([]byte(`[9,9,4]`), &s))
	assert.Equal(t, []int64{4, 9}, s.IDs())
}
