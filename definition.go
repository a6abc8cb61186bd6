package keyopts

import (
	"slices"
)

// Unbounded is the arity bound meaning "no limit". Any negative bound is
// treated the same way.
const Unbounded = -1

// Definition describes a single command line option.
//
// At least one of Short or Long must be set. A negative MinArity or MaxArity
// means that bound is not enforced. Defaults are used for the help text and
// are also injected into the parse result, as a single occurrence, when the
// option does not appear in the input. They are not used to fill in an
// occurrence that is present but short of values; that is an error.
type Definition struct {
	Short       rune
	Long        string
	MinArity    int
	MaxArity    int
	Description string
	Defaults    []string
}

// KeyedDefinition pairs an application chosen key with a Definition.
type KeyedDefinition[K comparable] struct {
	Key K
	Definition
}

// Define is a shorthand for building a KeyedDefinition.
func Define[K comparable](key K, short rune, long string, minArity, maxArity int, description string, defaults ...string) KeyedDefinition[K] {
	return KeyedDefinition[K]{
		Key: key,
		Definition: Definition{
			Short:       short,
			Long:        long,
			MinArity:    minArity,
			MaxArity:    maxArity,
			Description: description,
			Defaults:    defaults,
		},
	}
}

// HasShort reports whether the definition has a short flag.
func (d Definition) HasShort() bool {
	return d.Short != 0
}

// HasLong reports whether the definition has a long flag.
func (d Definition) HasLong() bool {
	return d.Long != ""
}

// FlagText returns the text used to name the option in messages, preferring
// the short flag.
func (d Definition) FlagText() string {
	if d.HasShort() {
		return shortFlagText(d.Short)
	}
	if d.HasLong() {
		return longFlagText(d.Long)
	}
	return ""
}

func (d Definition) clone() Definition {
	d.Defaults = slices.Clone(d.Defaults)
	return d
}

func shortFlagText(r rune) string {
	return "-" + string(r)
}

func longFlagText(name string) string {
	return "--" + name
}

func bounded(n int) bool {
	return n >= 0
}
