package pickle

import (
	"regexp"
	"unicode/utf8"

	"github.com/chriserin/pickle/internal/parser"
)

var placeholderPattern = regexp.MustCompile(`<([^<>]*)>`)

// scope is the inherited context of a scenario: tags and background steps
// from its enclosing Feature and Rule. Values are never mutated in place.
type scope struct {
	tags       []parser.Tag
	background []parser.Step
}

func (s scope) withTags(tags []parser.Tag) scope {
	return scope{tags: concat(s.tags, tags), background: s.background}
}

func (s scope) withBackground(steps []parser.Step) scope {
	return scope{tags: s.tags, background: concat(s.background, steps)}
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

type compiler struct {
	uri      string
	language string
}

// Compile expands a document into pickles in declaration order. Outline rows
// expand in table order. A document without a feature yields no pickles.
func Compile(doc *parser.GherkinDocument) []*Pickle {
	if doc == nil || doc.Feature == nil {
		return nil
	}

	c := compiler{uri: doc.URI, language: doc.Feature.Language}
	s := scope{}.withTags(doc.Feature.Tags)

	var pickles []*Pickle
	for _, child := range doc.Feature.Children {
		switch {
		case child.Background != nil:
			s = s.withBackground(child.Background.Steps)
		case child.Scenario != nil:
			pickles = append(pickles, c.scenario(child.Scenario, s)...)
		case child.Rule != nil:
			pickles = append(pickles, c.rule(child.Rule, s)...)
		}
	}
	return pickles
}

func (c compiler) rule(r *parser.Rule, outer scope) []*Pickle {
	s := outer.withTags(r.Tags)

	var pickles []*Pickle
	for _, child := range r.Children {
		switch {
		case child.Background != nil:
			s = s.withBackground(child.Background.Steps)
		case child.Scenario != nil:
			pickles = append(pickles, c.scenario(child.Scenario, s)...)
		}
	}
	return pickles
}

func (c compiler) scenario(sc *parser.Scenario, s scope) []*Pickle {
	if !sc.IsOutline() {
		return []*Pickle{c.plain(sc, s)}
	}

	var pickles []*Pickle
	for _, ex := range sc.Examples {
		if ex.TableHeader == nil {
			continue
		}
		for _, row := range ex.TableBody {
			pickles = append(pickles, c.outlineRow(sc, s, ex, row))
		}
	}
	return pickles
}

func (c compiler) plain(sc *parser.Scenario, s scope) *Pickle {
	steps := make([]Step, 0, len(s.background)+len(sc.Steps))
	for _, st := range concat(s.background, sc.Steps) {
		steps = append(steps, pickleStep(st, identity, nil))
	}
	return &Pickle{
		URI:       c.uri,
		Language:  c.language,
		Name:      sc.Name,
		Tags:      pickleTags(concat(s.tags, sc.Tags)),
		Locations: []parser.Location{sc.Location},
		Steps:     steps,
	}
}

func (c compiler) outlineRow(sc *parser.Scenario, s scope, ex parser.Examples, row parser.TableRow) *Pickle {
	sub := substitution(*ex.TableHeader, row)

	steps := make([]Step, 0, len(s.background)+len(sc.Steps))
	for _, st := range s.background {
		steps = append(steps, pickleStep(st, identity, nil))
	}
	for _, st := range sc.Steps {
		steps = append(steps, pickleStep(st, sub, &row.Location))
	}

	tags := concat(concat(s.tags, sc.Tags), ex.Tags)
	return &Pickle{
		URI:       c.uri,
		Language:  c.language,
		Name:      sub(sc.Name),
		Tags:      pickleTags(tags),
		Locations: []parser.Location{row.Location, sc.Location},
		Steps:     steps,
	}
}

func identity(s string) string { return s }

// substitution replaces every <name> with the row value of column name in a
// single pass. Unknown names are left as written; for duplicate column names
// the leftmost column wins.
func substitution(header, row parser.TableRow) func(string) string {
	values := make(map[string]string, len(header.Cells))
	for i, cell := range header.Cells {
		if i >= len(row.Cells) {
			break
		}
		if _, seen := values[cell.Value]; seen {
			continue
		}
		values[cell.Value] = row.Cells[i].Value
	}

	return func(s string) string {
		return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
			if v, ok := values[m[1:len(m)-1]]; ok {
				return v
			}
			return m
		})
	}
}

// pickleStep resolves one step. Steps of an outline row are located at
// [row, step]; all others at [step].
func pickleStep(st parser.Step, sub func(string) string, row *parser.Location) Step {
	loc := st.Location
	loc.Column += utf8.RuneCountInString(st.Keyword)

	locations := []parser.Location{loc}
	if row != nil {
		locations = []parser.Location{*row, loc}
	}

	step := Step{
		Text:      sub(st.Text),
		Arguments: []Argument{},
		Locations: locations,
	}
	if st.DocString != nil {
		step.Arguments = append(step.Arguments, Argument{DocString: &DocString{
			Content:     sub(st.DocString.Content),
			ContentType: sub(st.DocString.MediaType),
			Location:    st.DocString.Location,
		}})
	}
	if st.DataTable != nil {
		table := &DataTable{Rows: make([]Row, 0, len(st.DataTable.Rows))}
		for _, r := range st.DataTable.Rows {
			cells := make([]Cell, 0, len(r.Cells))
			for _, cell := range r.Cells {
				cells = append(cells, Cell{Value: sub(cell.Value), Location: cell.Location})
			}
			table.Rows = append(table.Rows, Row{Cells: cells})
		}
		step.Arguments = append(step.Arguments, Argument{DataTable: table})
	}
	return step
}

func pickleTags(tags []parser.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Tag{Name: t.Name, Location: t.Location})
	}
	return out
}
