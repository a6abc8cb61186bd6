package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/isobit/keyopts"
)

var heading = color.New(color.FgCyan, color.Bold)

type dump struct {
	Executable string         `yaml:"executable"`
	Options    []dumpOption   `yaml:"options"`
	Positions  []dumpPosition `yaml:"positions,omitempty"`
	Trailing   []string       `yaml:"trailing,omitempty"`
}

type dumpOption struct {
	Key         string     `yaml:"key"`
	Defaulted   bool       `yaml:"defaulted,omitempty"`
	Occurrences [][]string `yaml:"occurrences"`
}

type dumpPosition struct {
	Arg        int    `yaml:"arg"`
	Key        string `yaml:"key"`
	Occurrence int    `yaml:"occurrence"`
}

func newDump(po *keyopts.ParsedOptions[optionKey]) dump {
	d := dump{
		Executable: po.Executable(),
		Options:    []dumpOption{},
		Trailing:   po.TrailingValues(),
	}
	for _, key := range po.Keys() {
		opt := dumpOption{
			Key:       key.String(),
			Defaulted: po.Defaulted(key),
		}
		for _, occ := range po.Occurrences(key) {
			opt.Occurrences = append(opt.Occurrences, occ)
		}
		d.Options = append(d.Options, opt)
	}
	for _, pos := range po.Positions() {
		d.Positions = append(d.Positions, dumpPosition{
			Arg:        pos.ArgIndex,
			Key:        pos.Key.String(),
			Occurrence: pos.Occurrence,
		})
	}
	return d
}

func (d dump) writeText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("%s %s\n", heading.Sprint("Exe:"), d.Executable)
	ew.printf("%s\n", heading.Sprint("Options:"))
	for _, opt := range d.Options {
		if opt.Defaulted {
			ew.printf("%s: (default)\n", opt.Key)
		} else {
			ew.printf("%s:\n", opt.Key)
		}
		for _, occ := range opt.Occurrences {
			ew.printf("  Occurrence\n")
			for _, v := range occ {
				ew.printf("    %s\n", v)
			}
		}
	}
	ew.printf("%s\n", heading.Sprint("Positions:"))
	for _, pos := range d.Positions {
		ew.printf("  %d %s #%d\n", pos.Arg, pos.Key, pos.Occurrence)
	}
	ew.printf("%s\n", heading.Sprint("Trailing:"))
	for _, v := range d.Trailing {
		ew.printf("  %s\n", v)
	}
	return ew.err
}

func (d dump) writeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(err, "failed to encode dump")
	}
	return enc.Close()
}

// errWriter keeps the first write error and drops everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}
