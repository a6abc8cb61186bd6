package keyopts

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/shlex"
	"github.com/huandu/xstrings"
	"github.com/pkg/errors"
)

type fieldKind int

const (
	scalarField fieldKind = iota
	boolField
	sliceField
	argsField
)

type field struct {
	key   string
	kind  fieldKind
	def   Definition
	value reflect.Value
}

// StructDefinitions derives option definitions from the exported fields of
// the struct pointed to by config. Each definition is keyed by the Go field
// name.
//
// Arity follows the field type: bool fields take no values, slice fields take
// one or more values per occurrence, and every other field takes exactly one.
// Fields that are already non-zero provide the defaults.
//
// The derivation can be controlled with struct field tags, specified like
// `opts:"key1,key2=value2"`:
//
// `-` skip the field
//
// `name=<name>` use a custom long flag instead of the kebab-cased field name
//
// `short=<c>` add a short flag; must be a single character
//
// `min=<n>`, `max=<n>` override the arity bounds; -1 means unbounded
//
// `help=<text>` the description shown in help output
//
// `default=<values>` defaults, split using shell quoting rules
//
// `args` the field is a []string that receives the trailing values
func StructDefinitions(config interface{}) ([]KeyedDefinition[string], error) {
	fields, err := getFieldsFromConfig(config)
	if err != nil {
		return nil, err
	}
	defs := []KeyedDefinition[string]{}
	for _, f := range fields {
		if f.kind == argsField {
			continue
		}
		defs = append(defs, KeyedDefinition[string]{Key: f.key, Definition: f.def})
	}
	return defs, nil
}

// BuildFromStruct is a convenience for calling Build with the definitions
// returned by StructDefinitions.
func BuildFromStruct(config interface{}, opts ...Option) (*Registry[string], error) {
	defs, err := StructDefinitions(config)
	if err != nil {
		return nil, err
	}
	return Build(defs, opts...)
}

// Decode stores parsed results into the struct pointed to by config, which
// must be the struct the definitions were derived from. Only keys present in
// po are written: bool fields are set to true, slice fields receive every
// value of every occurrence, and other fields receive the latest value. A
// field whose last occurrence has no values, possible with a `min=0` tag, is
// left unchanged.
func Decode(po *ParsedOptions[string], config interface{}) error {
	fields, err := getFieldsFromConfig(config)
	if err != nil {
		return err
	}
	for _, f := range fields {
		switch f.kind {
		case argsField:
			f.value.Set(reflect.ValueOf(po.TrailingValues()))
			continue
		}
		if !po.IsPresent(f.key) {
			continue
		}
		switch f.kind {
		case boolField:
			if err := setValue(f.value, "true"); err != nil {
				return errors.Wrapf(err, "failed to decode %s", f.def.FlagText())
			}
		case sliceField:
			values := po.Values(f.key)
			slice := reflect.MakeSlice(f.value.Type(), len(values), len(values))
			for i, s := range values {
				if err := setValue(slice.Index(i), s); err != nil {
					return errors.Wrapf(err, "invalid value %q for %s", s, f.def.FlagText())
				}
			}
			f.value.Set(slice)
		default:
			// an occurrence without values leaves the field as it was
			occs := po.Occurrences(f.key)
			if len(occs[len(occs)-1]) == 0 {
				continue
			}
			s := po.LatestValue(f.key)
			if err := setValue(f.value, s); err != nil {
				return errors.Wrapf(err, "invalid value %q for %s", s, f.def.FlagText())
			}
		}
	}
	return nil
}

func getFieldsFromConfig(config interface{}) ([]field, error) {
	configVal := reflect.ValueOf(config)
	if !configVal.IsValid() {
		return nil, fmt.Errorf("invalid config value")
	}
	if configVal.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("config must be a struct pointer (got %s)", configVal.Type())
	}

	configElemVal := configVal.Elem()
	if !configElemVal.IsValid() || configElemVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("config must be a struct pointer (got %s)", configVal.Type())
	}

	return getFields(configElemVal)
}

// sv must be a reflected struct pointer element
func getFields(sv reflect.Value) ([]field, error) {
	fields := []field{}
	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Type().Field(i)
		val := sv.Field(i)

		// ignore unaddressable and unexported fields
		if !val.CanSet() {
			continue
		}

		tags, err := parseFieldTags(sf.Tag)
		if err != nil {
			return nil, fmt.Errorf("problem with field %s.%s: %w", sv.Type(), sf.Name, err)
		}
		if tags.exclude {
			continue
		}

		if sf.Anonymous && val.Kind() == reflect.Struct {
			embedded, err := getFields(val)
			if err != nil {
				return nil, err
			}
			fields = append(fields, embedded...)
			continue
		}

		f, err := getField(sf, val, tags)
		if err != nil {
			return nil, fmt.Errorf("problem with field %s.%s: %w", sv.Type(), sf.Name, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func getField(sf reflect.StructField, val reflect.Value, tags fieldTags) (field, error) {
	f := field{key: sf.Name, value: val}

	if tags.args {
		if _, ok := val.Addr().Interface().(*[]string); !ok {
			return field{}, fmt.Errorf("field has an args tag but type is not a slice of strings")
		}
		f.kind = argsField
		return f, nil
	}

	elemType := val.Type()
	switch {
	case reflect.PtrTo(elemType).Implements(textUnmarshalerType):
		f.kind = scalarField
		f.def.MinArity, f.def.MaxArity = 1, 1
	case elemType.Kind() == reflect.Bool:
		f.kind = boolField
		f.def.MinArity, f.def.MaxArity = 0, 0
	case elemType.Kind() == reflect.Slice:
		f.kind = sliceField
		elemType = elemType.Elem()
		f.def.MinArity, f.def.MaxArity = 1, Unbounded
	default:
		f.kind = scalarField
		f.def.MinArity, f.def.MaxArity = 1, 1
	}
	if !canSet(elemType) {
		return field{}, fmt.Errorf("not supported: no setter for type %s", val.Type())
	}

	f.def.Long = tags.name
	if f.def.Long == "" {
		f.def.Long = xstrings.ToKebabCase(sf.Name)
	}
	f.def.Short = tags.short
	f.def.Description = tags.help
	if tags.min != nil {
		f.def.MinArity = *tags.min
	}
	if tags.max != nil {
		f.def.MaxArity = *tags.max
	}

	switch {
	case tags.hasDefault:
		f.def.Defaults = tags.defaults
	case f.kind == boolField:
	case f.kind == sliceField:
		for i := 0; i < val.Len(); i++ {
			elem := val.Index(i)
			if elem.Kind() == reflect.Ptr && elem.IsNil() {
				continue
			}
			s, err := formatValue(elem)
			if err != nil {
				return field{}, err
			}
			f.def.Defaults = append(f.def.Defaults, s)
		}
	case !val.IsZero():
		s, err := formatValue(val)
		if err != nil {
			return field{}, err
		}
		f.def.Defaults = []string{s}
	}

	return f, nil
}

type fieldTags struct {
	exclude    bool
	args       bool
	name       string
	short      rune
	help       string
	min        *int
	max        *int
	hasDefault bool
	defaults   []string
}

func parseFieldTags(tag reflect.StructTag) (fieldTags, error) {
	t := fieldTags{}
	m := parseStructTagInner(tag.Get("opts"))
	pop := func(key string) (string, bool) {
		val, ok := m[key]
		if ok {
			delete(m, key)
		}
		return val, ok
	}
	popInt := func(key string) (*int, error) {
		s, ok := pop(key)
		if !ok {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", key, err)
		}
		return &n, nil
	}

	if _, ok := pop("-"); ok {
		t.exclude = true
	}

	if _, ok := pop("args"); ok {
		t.args = true
	}

	if name, ok := pop("name"); ok {
		t.name = name
	}

	if short, ok := pop("short"); ok {
		if utf8.RuneCountInString(short) != 1 {
			return t, fmt.Errorf("short name must be 1 letter")
		}
		t.short, _ = utf8.DecodeRuneInString(short)
	}

	if help, ok := pop("help"); ok {
		t.help = help
	}

	var err error
	if t.min, err = popInt("min"); err != nil {
		return t, err
	}
	if t.max, err = popInt("max"); err != nil {
		return t, err
	}

	if defaults, ok := pop("default"); ok {
		t.hasDefault = true
		t.defaults, err = shlex.Split(defaults)
		if err != nil {
			return t, errors.Wrap(err, "failed to split default")
		}
	}

	if len(m) > 0 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		return t, fmt.Errorf("unknown tags: %s", strings.Join(keys, ", "))
	}

	return t, nil
}
