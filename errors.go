package keyopts

import (
	"fmt"

	"github.com/pkg/errors"
)

// Configuration errors, returned by Build when the definition set is invalid.
var (
	ErrMissingFlag        = errors.New("neither short nor long flag specified")
	ErrDuplicateShortFlag = errors.New("short flag defined twice")
	ErrDuplicateLongFlag  = errors.New("long flag defined twice")
	ErrDuplicateKey       = errors.New("key defined twice")
	ErrInvalidArityRange  = errors.New("minimum arity greater than maximum")
	ErrDefaultCount       = errors.New("default value count outside arity range")
)

// Parse errors, returned by Parse when the input does not match the
// definitions.
var (
	ErrUnknownFlag   = errors.New("unknown flag")
	ErrTooFewValues  = errors.New("too few values")
	ErrTooManyValues = errors.New("too many values")
)

// ErrUnknownKey is returned when looking up the definition of a key that was
// never registered.
var ErrUnknownKey = errors.New("unknown option key")

// ConfigError describes a misconfigured option definition. Use errors.Is with
// one of the configuration sentinels to check the cause.
type ConfigError struct {
	Err error
	// Option is the flag text (-a or --name) of the offending definition, if
	// it has one.
	Option string
	Detail string
}

func (e *ConfigError) Error() string {
	msg := "misconfigured option"
	if e.Option != "" {
		msg += " " + e.Option
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError describes input that could not be parsed against the registered
// definitions.
type ParseError struct {
	Err error
	// Flag is the invocation text of the flag the error relates to, e.g. "-a"
	// or "--name". It is empty when no flag was open, such as a stray value
	// with trailing values disallowed.
	Flag string
	// Value is the first offending value, if any.
	Value string
}

func (e *ParseError) Error() string {
	switch {
	case e.Err == ErrUnknownFlag && e.Flag != "":
		return fmt.Sprintf("%s %s", e.Err, e.Flag)
	case e.Flag != "" && e.Value != "":
		return fmt.Sprintf("%s for option %s: unexpected value %q", e.Err, e.Flag, e.Value)
	case e.Flag != "":
		return fmt.Sprintf("%s for option %s", e.Err, e.Flag)
	case e.Value != "":
		return fmt.Sprintf("%s: unexpected value %q", e.Err, e.Value)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LookupError is returned by Registry.Definition for unregistered keys.
type LookupError struct {
	Key interface{}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnknownKey, e.Key)
}

func (e *LookupError) Unwrap() error {
	return ErrUnknownKey
}
