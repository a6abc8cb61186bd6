// Command optdump parses its arguments against a fixed set of options and
// prints what was captured: the executable name, every occurrence of every
// option, the flag positions and the trailing values.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/huandu/xstrings"
	"github.com/pkg/errors"

	"github.com/isobit/keyopts"
	optslog "github.com/isobit/keyopts/slog"
)

type optionKey int

const (
	keyHelp optionKey = iota
	keyOutput
	keyFormat
	keyInclude
	keyDefine
	keyPair
	keyQuiet
	keyLogLevel
	keyLogJSON
)

var keyNames = map[optionKey]string{
	keyHelp:     "Help",
	keyOutput:   "Output",
	keyFormat:   "Format",
	keyInclude:  "Include",
	keyDefine:   "Define",
	keyPair:     "Pair",
	keyQuiet:    "Quiet",
	keyLogLevel: "LogLevel",
	keyLogJSON:  "LogJSON",
}

func (k optionKey) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("optionKey(%d)", int(k))
}

func define(key optionKey, short rune, minArity, maxArity int, description string, defaults ...string) keyopts.KeyedDefinition[optionKey] {
	return keyopts.Define(key, short, xstrings.ToKebabCase(key.String()), minArity, maxArity, description, defaults...)
}

func definitions() []keyopts.KeyedDefinition[optionKey] {
	defs := []keyopts.KeyedDefinition[optionKey]{
		define(keyHelp, 'h', 0, 0, "Print this help and exit."),
		define(keyOutput, 'o', 1, 1, "Write the dump to a file instead of standard output."),
		define(keyFormat, 'f', 1, 1, "Dump format, text or yaml.", "text"),
		define(keyInclude, 'I', 1, keyopts.Unbounded,
			"Directories to include.\nEach occurrence takes one or more values.",
		),
		define(keyDefine, 'D', 1, 1, "Define NAME=VALUE. May be repeated."),
		define(keyPair, 'p', 2, 2, "A name followed by a value."),
		define(keyQuiet, 'q', 0, 0, "Only check the arguments, print nothing."),
	}
	return append(defs, optslog.Definitions(keyLogLevel, keyLogJSON)...)
}

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %s", err))
		os.Exit(2)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	defs := definitions()
	r := keyopts.New(defs)
	po, err := r.Parse(args)
	if err != nil {
		return err
	}

	if po.IsPresent(keyHelp) {
		return writeUsage(stdout, r, filepath.Base(po.Executable()))
	}

	logOpts, err := optslog.FromParsed(po, keyLogLevel, keyLogJSON)
	if err != nil {
		return err
	}
	logger := logOpts.NewLogger(stderr, nil)

	// parse again so the debug trace reaches the configured logger
	po, err = keyopts.New(defs, keyopts.WithLogger(logger)).Parse(args)
	if err != nil {
		return err
	}

	if po.IsPresent(keyQuiet) {
		return nil
	}

	if !po.IsPresent(keyOutput) {
		return writeDump(stdout, po)
	}

	f, err := os.Create(po.LatestValue(keyOutput))
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if err := writeDump(f, po); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close output file")
	}
	return nil
}

func writeDump(w io.Writer, po *keyopts.ParsedOptions[optionKey]) error {
	d := newDump(po)
	switch format := po.LatestValue(keyFormat); format {
	case "text":
		return d.writeText(w)
	case "yaml":
		return d.writeYAML(w)
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

func writeUsage(w io.Writer, r *keyopts.Registry[optionKey], name string) error {
	fmt.Fprintf(w, "USAGE: %s [OPTIONS] [VALUES...]\n\n", name)
	return r.WriteHelp(w)
}
