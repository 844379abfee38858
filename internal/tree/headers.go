package tree

import "sort"

// Headers is an ordered set of PGN tag pairs. Iteration follows insertion
// order; setting an existing tag keeps its place.
type Headers struct {
	keys   []string
	values map[string]string
}

// NewHeaders returns an empty header set.
func NewHeaders() *Headers {
	return &Headers{values: make(map[string]string)}
}

// HeadersFromMap builds headers from a map, roster tags first, then the
// rest sorted by name.
func HeadersFromMap(m map[string]string, order []string) *Headers {
	h := NewHeaders()
	for _, k := range order {
		if v, ok := m[k]; ok {
			h.Set(k, v)
		}
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if !h.Has(k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		h.Set(k, m[k])
	}
	return h
}

// Set adds or replaces a tag.
func (h *Headers) Set(tag, value string) {
	if _, ok := h.values[tag]; !ok {
		h.keys = append(h.keys, tag)
	}
	h.values[tag] = value
}

// Get returns a tag's value, "" when absent.
func (h *Headers) Get(tag string) string {
	return h.values[tag]
}

// Lookup returns a tag's value and whether it is present.
func (h *Headers) Lookup(tag string) (string, bool) {
	v, ok := h.values[tag]
	return v, ok
}

// Has reports whether tag is present.
func (h *Headers) Has(tag string) bool {
	_, ok := h.values[tag]
	return ok
}

// Len returns the number of tags.
func (h *Headers) Len() int {
	return len(h.keys)
}

// Keys returns the tags in insertion order.
func (h *Headers) Keys() []string {
	return append([]string(nil), h.keys...)
}

// Map returns a copy of the tags as a map.
func (h *Headers) Map() map[string]string {
	m := make(map[string]string, len(h.values))
	for k, v := range h.values {
		m[k] = v
	}
	return m
}

// Each calls fn for every tag in insertion order.
func (h *Headers) Each(fn func(tag, value string)) {
	for _, k := range h.keys {
		fn(k, h.values[k])
	}
}
