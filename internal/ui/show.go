package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/chriserin/pickle/internal/pickle"
)

// ShowPickle renders a pickle as a resolved scenario, steps prefixed with
// their source location.
func ShowPickle(w io.Writer, p *pickle.Pickle) {
	if len(p.Tags) > 0 {
		fmt.Fprintln(w, tagStyle.Render(strings.Join(p.TagNames(), " ")))
	}
	fmt.Fprintf(w, "%s %s\n", keywordStyle.Render("Scenario:"), p.Name)

	for _, s := range p.Steps {
		loc := ""
		if n := len(s.Locations); n > 0 {
			// the step itself is always the last location
			loc = fmt.Sprintf("%d:%d", s.Locations[n-1].Line, s.Locations[n-1].Column)
		}
		fmt.Fprintf(w, "  %-7s %s\n", loc, s.Text)

		for _, arg := range s.Arguments {
			switch {
			case arg.DocString != nil:
				fmt.Fprintln(w, "          \"\"\""+arg.DocString.ContentType)
				for _, line := range strings.Split(arg.DocString.Content, "\n") {
					fmt.Fprintln(w, "          "+line)
				}
				fmt.Fprintln(w, "          \"\"\"")
			case arg.DataTable != nil:
				for _, row := range arg.DataTable.Rows {
					cells := make([]string, 0, len(row.Cells))
					for _, c := range row.Cells {
						cells = append(cells, c.Value)
					}
					fmt.Fprintln(w, "          | "+strings.Join(cells, " | ")+" |")
				}
			}
		}
	}
}
