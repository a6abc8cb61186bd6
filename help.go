package keyopts

import (
	"bufio"
	"io"
	"strings"

	"v.io/x/lib/textutil"
)

// HelpWidth is the column width descriptions and default lists are wrapped
// to, not counting indentation.
const HelpWidth = 64

const (
	helpIndent    = 4
	defaultsLabel = "Default: "
)

// WriteDefinitionHelp writes the help text for a single definition, indented
// by indent spaces.
//
// The first line lists the flags. The description follows, wrapped and
// indented a further four spaces; every line break in the description starts
// a new paragraph. If the definition has defaults, they are listed after a
// blank line with continuation lines aligned under the first default.
func WriteDefinitionHelp(w io.Writer, def Definition, indent int) error {
	bw := bufio.NewWriter(w)
	indent1 := strings.Repeat(" ", indent)
	indent2 := indent1 + strings.Repeat(" ", helpIndent)

	bw.WriteString(indent1)
	bw.WriteString(flagsLine(def))
	bw.WriteString("\n")

	desc := descriptionParagraphs(def.Description)
	if desc != "" {
		wrap(bw, desc, len(indent2)+HelpWidth, indent2, indent2)
	}

	if len(def.Defaults) > 0 {
		if desc != "" {
			bw.WriteString("\n")
		}
		hanging := indent2 + strings.Repeat(" ", len(defaultsLabel))
		wrap(bw, defaultsLabel+strings.Join(def.Defaults, " "), len(indent2)+HelpWidth, indent2, hanging)
	}

	return bw.Flush()
}

func flagsLine(def Definition) string {
	flags := []string{}
	if def.HasShort() {
		flags = append(flags, shortFlagText(def.Short))
	}
	if def.HasLong() {
		flags = append(flags, longFlagText(def.Long))
	}
	return strings.Join(flags, ", ")
}

// descriptionParagraphs turns every line of s into its own paragraph.
func descriptionParagraphs(s string) string {
	paragraphs := []string{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	return strings.Join(paragraphs, "\n\n")
}

// wrap writes text word-wrapped to width, always ending with a newline.
func wrap(w io.StringWriter, text string, width int, indents ...string) {
	sb := &strings.Builder{}
	wr := textutil.NewUTF8WrapWriter(sb, width)
	wr.SetIndents(indents...)
	wr.Write([]byte(text))
	wr.Flush()
	out := sb.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	w.WriteString(out)
}

// HelpString returns the help text written by WriteHelp.
func (r *Registry[K]) HelpString() string {
	sb := strings.Builder{}
	r.WriteHelp(&sb)
	return sb.String()
}

// WriteHelp writes an OPTIONS section describing every definition in
// registration order.
func (r *Registry[K]) WriteHelp(w io.Writer) error {
	if _, err := io.WriteString(w, "OPTIONS:\n"); err != nil {
		return err
	}
	for _, kd := range r.definitions {
		if err := WriteDefinitionHelp(w, kd.Definition, helpIndent); err != nil {
			return err
		}
	}
	return nil
}
