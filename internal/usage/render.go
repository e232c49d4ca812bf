package usage

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/flexion/cliscaffold/internal/cli"
)

// wrapWidth is the column the overview prose is wrapped at.
const wrapWidth = 78

// Row is one line of the synthesized option table.
type Row struct {
	Flag        string
	Description string
}

// Document is a fully synthesized usage text: overview prose plus the
// option table. It has no identity of its own and is recomputed fresh on
// every call.
type Document struct {
	Overview string
	Rows     []Row
}

// Compose builds the Document for a program from its annotated doc text
// and its declared grammar.
func Compose(doc string, g *cli.Grammar) Document {
	return Document{
		Overview: ExtractOverview(doc),
		Rows:     optionRows(g),
	}
}

// Synthesize renders the usage text for a program to w. Sections with
// nothing to say are omitted entirely rather than rendered as empty
// headers.
func Synthesize(w io.Writer, prog, doc string, g *cli.Grammar) error {
	d := Compose(doc, g)

	var b strings.Builder
	if d.Overview != "" {
		b.WriteString(wordwrap.WrapString(d.Overview, wrapWidth))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Usage:\n  %s [options] [args]\n", prog)

	if len(d.Rows) > 0 {
		width := 0
		for _, row := range d.Rows {
			if len(row.Flag) > width {
				width = len(row.Flag)
			}
		}
		b.WriteString("\nOptions:\n")
		for _, row := range d.Rows {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, row.Flag, row.Description)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// optionRows derives the option table from the declared grammar: one row
// per flag, both forms shown, ordered by name case-insensitively.
func optionRows(g *cli.Grammar) []Row {
	if g == nil {
		return nil
	}

	specs := append([]cli.OptionSpec(nil), g.Options()...)
	sort.SliceStable(specs, func(i, j int) bool {
		return sortKey(specs[i]) < sortKey(specs[j])
	})

	rows := make([]Row, 0, len(specs))
	for _, spec := range specs {
		flag := fmt.Sprintf("-%c", spec.Short)
		if spec.Long != "" {
			flag += fmt.Sprintf(", --%s", spec.Long)
		}
		if spec.TakesValue {
			flag += " <value>"
		}
		rows = append(rows, Row{Flag: flag, Description: spec.Description})
	}
	return rows
}

// sortKey orders specs by name, case-insensitively; a flag with a long
// form sorts on it, one without sorts on its letter.
func sortKey(spec cli.OptionSpec) string {
	if spec.Long != "" {
		return strings.ToLower(spec.Long)
	}
	return strings.ToLower(string(spec.Short))
}
