package keyopts

import (
	"strings"
	"unicode/utf8"
)

// Parse parses args against the registered definitions. args[0] is taken as
// the executable name and is not scanned.
//
// Any token starting with "-" is a flag token: "--name" names one long flag,
// "-abc" names the short flags a, b and c in turn. Every other token is a
// value and is given to the open flag until its MaxArity is reached. Values
// past that point are held back until the next flag token, where they are an
// error, or the end of input, where they become trailing values.
//
// Parse returns a *ParseError if a flag is unknown, an occurrence ends with
// fewer than MinArity values, or values are left over that cannot be trailing
// values. No partial result is returned on error.
func (r *Registry[K]) Parse(args []string) (*ParsedOptions[K], error) {
	executable := ""
	if len(args) > 0 {
		executable = args[0]
		args = args[1:]
	}

	p := parser[K]{
		reg:    r,
		result: newParsedOptions[K](executable, len(r.definitions)),
	}
	if err := p.run(args); err != nil {
		r.logger.Debug("parse failed", "error", err)
		return nil, err
	}
	r.injectDefaults(p.result)
	return p.result, nil
}

// openFlag is the flag currently collecting values. A nil *openFlag means
// the parser is idle.
type openFlag[K comparable] struct {
	def        *KeyedDefinition[K]
	invocation string
}

type parser[K comparable] struct {
	reg    *Registry[K]
	result *ParsedOptions[K]
	open   *openFlag[K]
	// ambiguous holds values that did not fit the open flag, or arrived while
	// idle. They are resolved at the next flag token or at end of input.
	ambiguous []string
	// idle holds values seen before any flag was open. They can only ever be
	// trailing values.
	idle []string
}

func (p *parser[K]) run(args []string) error {
	for i, arg := range args {
		argIndex := i + 1
		if !strings.HasPrefix(arg, "-") {
			p.value(arg)
			continue
		}
		if err := p.flagToken(argIndex, arg); err != nil {
			return err
		}
	}
	return p.finish()
}

func (p *parser[K]) value(v string) {
	if p.open == nil {
		p.ambiguous = append(p.ambiguous, v)
		return
	}
	key := p.open.def.Key
	maxArity := p.open.def.MaxArity
	if !bounded(maxArity) || len(p.result.lastOccurrence(key)) < maxArity {
		p.result.appendValue(key, v)
		return
	}
	p.reg.logger.Debug("value exceeds arity, holding",
		"flag", p.open.invocation,
		"value", v,
	)
	p.ambiguous = append(p.ambiguous, v)
}

func (p *parser[K]) flagToken(argIndex int, arg string) error {
	if strings.HasPrefix(arg, "--") {
		name := arg[2:]
		i, ok := p.reg.byLong[name]
		if !ok || name == "" {
			return &ParseError{Err: ErrUnknownFlag, Flag: arg}
		}
		return p.startFlag(argIndex, i, arg)
	}

	cluster := arg[1:]
	if cluster == "" {
		return &ParseError{Err: ErrUnknownFlag, Flag: arg}
	}
	for len(cluster) > 0 {
		c, size := utf8.DecodeRuneInString(cluster)
		cluster = cluster[size:]
		invocation := shortFlagText(c)
		i, ok := p.reg.byShort[c]
		if !ok {
			return &ParseError{Err: ErrUnknownFlag, Flag: invocation}
		}
		if err := p.startFlag(argIndex, i, invocation); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser[K]) startFlag(argIndex, defIndex int, invocation string) error {
	if err := p.closeFlag(); err != nil {
		return err
	}
	def := &p.reg.definitions[defIndex]
	occurrence := p.result.addOccurrence(def.Key)
	p.result.positions = append(p.result.positions, Position[K]{
		ArgIndex:   argIndex,
		Key:        def.Key,
		Occurrence: occurrence,
	})
	p.open = &openFlag[K]{def: def, invocation: invocation}
	p.reg.logger.Debug("opened flag",
		"flag", invocation,
		"arg", argIndex,
		"occurrence", occurrence,
	)
	return nil
}

// closeFlag resolves the open flag ahead of a new flag token. Held back
// values at this point are excess values for the open flag. With no open
// flag they were seen while idle and can only be trailing values.
func (p *parser[K]) closeFlag() error {
	if p.open == nil {
		p.idle = append(p.idle, p.ambiguous...)
		p.ambiguous = nil
		return p.checkIdle()
	}
	if err := p.checkMinArity(); err != nil {
		return err
	}
	if len(p.ambiguous) > 0 {
		return &ParseError{Err: ErrTooManyValues, Flag: p.open.invocation, Value: p.ambiguous[0]}
	}
	p.open = nil
	return nil
}

func (p *parser[K]) checkMinArity() error {
	minArity := p.open.def.MinArity
	if bounded(minArity) && len(p.result.lastOccurrence(p.open.def.Key)) < minArity {
		return &ParseError{Err: ErrTooFewValues, Flag: p.open.invocation}
	}
	return nil
}

func (p *parser[K]) checkIdle() error {
	if len(p.idle) > 0 && !p.reg.config.AllowTrailingValues {
		return &ParseError{Err: ErrTooManyValues, Value: p.idle[0]}
	}
	return nil
}

func (p *parser[K]) finish() error {
	flag := ""
	if p.open != nil {
		if err := p.checkMinArity(); err != nil {
			return err
		}
		flag = p.open.invocation
		p.open = nil
	}
	if len(p.ambiguous) > 0 && !p.reg.config.AllowTrailingValues {
		return &ParseError{Err: ErrTooManyValues, Flag: flag, Value: p.ambiguous[0]}
	}
	p.idle = append(p.idle, p.ambiguous...)
	p.ambiguous = nil
	if err := p.checkIdle(); err != nil {
		return err
	}
	p.result.trailing = p.idle
	return nil
}

// injectDefaults adds a single occurrence holding the declared defaults for
// every defaulted key that did not appear in the input.
func (r *Registry[K]) injectDefaults(po *ParsedOptions[K]) {
	for _, i := range r.haveDefaults {
		kd := r.definitions[i]
		if po.IsPresent(kd.Key) {
			continue
		}
		po.byKey[kd.Key] = []Occurrence{append(Occurrence{}, kd.Defaults...)}
		po.keys = append(po.keys, kd.Key)
		po.defaulted[kd.Key] = true
		r.logger.Debug("injected defaults", "option", kd.FlagText(), "values", len(kd.Defaults))
	}
}
