package keyopts

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// Config controls parsing behavior that is not tied to a single definition.
type Config struct {
	// AllowTrailingValues permits values that no flag consumed to be returned
	// as trailing values. When false such values are a parse error.
	AllowTrailingValues bool
	// Logger receives debug records while building and parsing. A nil Logger
	// discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when no options are passed to
// Build.
func DefaultConfig() Config {
	return Config{
		AllowTrailingValues: true,
	}
}

type Option interface {
	Apply(cfg *Config)
}

type optionFunc func(cfg *Config)

func (of optionFunc) Apply(cfg *Config) {
	of(cfg)
}

// WithTrailingValues sets Config.AllowTrailingValues.
func WithTrailingValues(allow bool) Option {
	return optionFunc(func(cfg *Config) {
		cfg.AllowTrailingValues = allow
	})
}

// WithLogger sets Config.Logger.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(cfg *Config) {
		cfg.Logger = logger
	})
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return optionFunc(func(cfg *Config) {
		*cfg = c
	})
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Registry holds a validated set of option definitions and parses argument
// lists against them. A Registry is immutable once built and may be used for
// any number of concurrent Parse calls.
type Registry[K comparable] struct {
	config      Config
	logger      *slog.Logger
	definitions []KeyedDefinition[K]
	byKey       map[K]int
	byShort     map[rune]int
	byLong      map[string]int
	// indexes into definitions, in registration order
	haveDefaults []int
}

// New creates a new Registry from the provided definitions.
//
// New panics if the definitions are misconfigured. If you would like to have
// errors returned for handling, use Build instead.
func New[K comparable](definitions []KeyedDefinition[K], opts ...Option) *Registry[K] {
	r, err := Build(definitions, opts...)
	if err != nil {
		panic(fmt.Sprintf("keyopts: %s", err))
	}
	return r
}

// Build is like New, but it returns any configuration error instead of
// calling panic.
//
// Definitions are checked in order and the first of the following problems
// is reported as a *ConfigError: neither flag set, a short flag, long flag or
// key used twice, a bounded MinArity greater than a bounded MaxArity, or a
// number of defaults outside the bounded arity range.
func Build[K comparable](definitions []KeyedDefinition[K], opts ...Option) (*Registry[K], error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt.Apply(&cfg)
	}

	r := &Registry[K]{
		config:      cfg,
		logger:      cfg.Logger,
		definitions: make([]KeyedDefinition[K], 0, len(definitions)),
		byKey:       make(map[K]int, len(definitions)),
		byShort:     map[rune]int{},
		byLong:      map[string]int{},
	}
	if r.logger == nil {
		r.logger = discardLogger
	}

	for _, kd := range definitions {
		kd.Definition = kd.Definition.clone()
		if err := r.add(kd); err != nil {
			return nil, err
		}
	}

	r.logger.Debug("built option registry",
		"definitions", len(r.definitions),
		"defaults", len(r.haveDefaults),
		"allowTrailingValues", cfg.AllowTrailingValues,
	)
	return r, nil
}

func (r *Registry[K]) add(kd KeyedDefinition[K]) error {
	d := kd.Definition
	option := d.FlagText()

	if !d.HasShort() && !d.HasLong() {
		return &ConfigError{Err: ErrMissingFlag, Detail: fmt.Sprintf("key %v", kd.Key)}
	}

	if d.HasShort() {
		if _, ok := r.byShort[d.Short]; ok {
			return &ConfigError{Err: ErrDuplicateShortFlag, Option: shortFlagText(d.Short)}
		}
	}

	if d.HasLong() {
		if _, ok := r.byLong[d.Long]; ok {
			return &ConfigError{Err: ErrDuplicateLongFlag, Option: longFlagText(d.Long)}
		}
	}

	if _, ok := r.byKey[kd.Key]; ok {
		return &ConfigError{Err: ErrDuplicateKey, Option: option, Detail: fmt.Sprintf("key %v", kd.Key)}
	}

	if bounded(d.MinArity) && bounded(d.MaxArity) && d.MinArity > d.MaxArity {
		return &ConfigError{
			Err:    ErrInvalidArityRange,
			Option: option,
			Detail: fmt.Sprintf("min %d, max %d", d.MinArity, d.MaxArity),
		}
	}

	if n := len(d.Defaults); n > 0 {
		if bounded(d.MinArity) && n < d.MinArity {
			return &ConfigError{
				Err:    ErrDefaultCount,
				Option: option,
				Detail: fmt.Sprintf("%d defaults, min %d", n, d.MinArity),
			}
		}
		if bounded(d.MaxArity) && n > d.MaxArity {
			return &ConfigError{
				Err:    ErrDefaultCount,
				Option: option,
				Detail: fmt.Sprintf("%d defaults, max %d", n, d.MaxArity),
			}
		}
	}

	i := len(r.definitions)
	r.definitions = append(r.definitions, kd)
	r.byKey[kd.Key] = i
	if d.HasShort() {
		r.byShort[d.Short] = i
	}
	if d.HasLong() {
		r.byLong[d.Long] = i
	}
	if len(d.Defaults) > 0 {
		r.haveDefaults = append(r.haveDefaults, i)
	}
	return nil
}

// Config returns the configuration the registry was built with.
func (r *Registry[K]) Config() Config {
	return r.config
}

// Definition returns a copy of the definition registered for key, or a
// *LookupError if there is none.
func (r *Registry[K]) Definition(key K) (Definition, error) {
	i, ok := r.byKey[key]
	if !ok {
		return Definition{}, &LookupError{Key: key}
	}
	return r.definitions[i].Definition.clone(), nil
}

// Definitions returns copies of all definitions in registration order.
func (r *Registry[K]) Definitions() []KeyedDefinition[K] {
	defs := make([]KeyedDefinition[K], len(r.definitions))
	for i, kd := range r.definitions {
		defs[i] = KeyedDefinition[K]{Key: kd.Key, Definition: kd.Definition.clone()}
	}
	return defs
}

// ParseOS is a convenience method for calling Parse(os.Args).
func (r *Registry[K]) ParseOS() (*ParsedOptions[K], error) {
	return r.Parse(os.Args)
}

// ParseString splits cmdline using shell quoting rules and parses the result
// as the arguments following the executable name exe.
func (r *Registry[K]) ParseString(exe, cmdline string) (*ParsedOptions[K], error) {
	args, err := shlex.Split(cmdline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to split command line")
	}
	return r.Parse(append([]string{exe}, args...))
}
