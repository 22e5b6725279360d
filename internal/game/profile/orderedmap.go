package profile

import "encoding/json"

// OrderedMap is a string-keyed map that remembers insertion order. Sheet
// sections preserve the order entries were catalogued or acquired in, so
// plain Go maps are not enough here.
type OrderedMap[V any] struct {
	keys  []string
	items map[string]V
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{items: make(map[string]V)}
}

// Set inserts or replaces the value for key. A replaced key keeps its
// original position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}

// Get returns the value for key and whether it is present.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.items[key]
	return ok
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order.
func (m *OrderedMap[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

type orderedEntry[V any] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// MarshalJSON encodes the map as an ordered array of key/value pairs.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	entries := make([]orderedEntry[V], 0, len(m.keys))
	for _, k := range m.keys {
		entries = append(entries, orderedEntry[V]{Key: k, Value: m.items[k]})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes the pair-array form produced by MarshalJSON.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	var entries []orderedEntry[V]
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	m.keys = nil
	m.items = make(map[string]V, len(entries))
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return nil
}
