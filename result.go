package keyopts

import (
	"slices"
)

// Occurrence holds the values captured for one appearance of a flag.
type Occurrence []string

// Position records where a flag appeared in the argument list.
type Position[K comparable] struct {
	// ArgIndex is the index of the token within the parsed argument list,
	// where 0 is the executable name.
	ArgIndex int
	Key      K
	// Occurrence is the index into Occurrences(Key) for this appearance.
	Occurrence int
}

// ParsedOptions is the result of a successful Parse. It owns all of its data
// and is never modified after Parse returns; every accessor returns a copy.
type ParsedOptions[K comparable] struct {
	executable string
	byKey      map[K][]Occurrence
	keys       []K
	defaulted  map[K]bool
	trailing   []string
	positions  []Position[K]
}

func newParsedOptions[K comparable](executable string, sizeHint int) *ParsedOptions[K] {
	return &ParsedOptions[K]{
		executable: executable,
		byKey:      make(map[K][]Occurrence, sizeHint),
		defaulted:  map[K]bool{},
	}
}

// addOccurrence appends an empty occurrence for key and returns its index.
func (po *ParsedOptions[K]) addOccurrence(key K) int {
	occs, ok := po.byKey[key]
	if !ok {
		po.keys = append(po.keys, key)
	}
	po.byKey[key] = append(occs, Occurrence{})
	return len(occs)
}

func (po *ParsedOptions[K]) lastOccurrence(key K) Occurrence {
	occs := po.byKey[key]
	return occs[len(occs)-1]
}

func (po *ParsedOptions[K]) appendValue(key K, value string) {
	occs := po.byKey[key]
	occs[len(occs)-1] = append(occs[len(occs)-1], value)
}

// Executable returns the first element of the parsed argument list.
func (po *ParsedOptions[K]) Executable() string {
	return po.executable
}

// IsPresent reports whether key has at least one occurrence, including one
// injected from its defaults.
func (po *ParsedOptions[K]) IsPresent(key K) bool {
	_, ok := po.byKey[key]
	return ok
}

// Defaulted reports whether the entry for key was injected from its defaults
// rather than read from the input.
func (po *ParsedOptions[K]) Defaulted(key K) bool {
	return po.defaulted[key]
}

// Count returns the number of occurrences of key.
func (po *ParsedOptions[K]) Count(key K) int {
	return len(po.byKey[key])
}

// LatestValue returns the last value of the last occurrence of key, or an
// empty string if key is absent or its last occurrence has no values.
//
// This is intended for single value options that may be repeated, where the
// last one wins. It is likely not what you want for multi value options.
func (po *ParsedOptions[K]) LatestValue(key K) string {
	occs := po.byKey[key]
	if len(occs) == 0 {
		return ""
	}
	last := occs[len(occs)-1]
	if len(last) == 0 {
		return ""
	}
	return last[len(last)-1]
}

// Occurrences returns every occurrence of key in input order.
func (po *ParsedOptions[K]) Occurrences(key K) []Occurrence {
	occs, ok := po.byKey[key]
	if !ok {
		return nil
	}
	out := make([]Occurrence, len(occs))
	for i, occ := range occs {
		out[i] = slices.Clone(occ)
		if out[i] == nil {
			out[i] = Occurrence{}
		}
	}
	return out
}

// Values returns the values of every occurrence of key, concatenated.
func (po *ParsedOptions[K]) Values(key K) []string {
	var values []string
	for _, occ := range po.byKey[key] {
		values = append(values, occ...)
	}
	return values
}

// Keys returns the keys that have an entry, in the order they first appeared
// in the input, followed by defaulted keys in registration order.
func (po *ParsedOptions[K]) Keys() []K {
	return slices.Clone(po.keys)
}

// TrailingValues returns the values not consumed by any flag.
func (po *ParsedOptions[K]) TrailingValues() []string {
	return slices.Clone(po.trailing)
}

// Positions returns one entry per flag appearance in the input, in scan
// order. Entries injected from defaults are not listed.
func (po *ParsedOptions[K]) Positions() []Position[K] {
	return slices.Clone(po.positions)
}
