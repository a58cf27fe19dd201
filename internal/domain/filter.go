package domain

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// FilterSet is an immutable set of selected category ids. The zero value is
// the empty set, which means "no category constraint".
type FilterSet struct {
	ids map[int64]struct{}
}

// NewFilterSet builds a set from ids, collapsing duplicates.
func NewFilterSet(ids ...int64) FilterSet {
	if len(ids) == 0 {
		return FilterSet{}
	}
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return FilterSet{ids: m}
}

// Toggle returns a new set with id removed if present, added otherwise.
// The receiver is never modified.
func (s FilterSet) Toggle(id int64) FilterSet {
	m := make(map[int64]struct{}, len(s.ids)+1)
	for k := range s.ids {
		m[k] = struct{}{}
	}
	if _, ok := m[id]; ok {
		delete(m, id)
	} else {
		m[id] = struct{}{}
	}
	if len(m) == 0 {
		return FilterSet{}
	}
	return FilterSet{ids: m}
}

func (s FilterSet) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s FilterSet) Len() int {
	return len(s.ids)
}

func (s FilterSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the members in ascending order.
func (s FilterSet) IDs() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s FilterSet) Equal(other FilterSet) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Key is a canonical string form, used to tag in-flight queries and in logs.
func (s FilterSet) Key() string {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (s FilterSet) String() string {
	return s.Key()
}

func (s FilterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *FilterSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewFilterSet(ids...)
	return nil
}
