package parser

import (
	messages "github.com/cucumber/messages/go/v21"
)

// Transform converts the grammar engine's tree into a GherkinDocument.
// language is the dialect the keywords were matched in; the engine reports
// "en" for any source without a language header, so the feature takes it
// from here. Slices in the result are never nil.
func Transform(tree *messages.GherkinDocument, uri, language string) *GherkinDocument {
	doc := &GherkinDocument{
		URI:      uri,
		Comments: []Comment{},
	}
	if tree == nil {
		return doc
	}

	for _, c := range tree.Comments {
		doc.Comments = append(doc.Comments, Comment{
			Location: location(c.Location),
			Text:     c.Text,
		})
	}

	if tree.Feature == nil {
		return doc
	}

	f := tree.Feature
	feature := &Feature{
		Location:    location(f.Location),
		Tags:        tags(f.Tags),
		Language:    f.Language,
		Keyword:     f.Keyword,
		Name:        f.Name,
		Description: f.Description,
		Children:    []FeatureChild{},
	}
	if language != "" {
		feature.Language = language
	}
	if feature.Language == "" {
		feature.Language = DefaultLanguage
	}

	for _, child := range f.Children {
		switch {
		case child.Background != nil:
			feature.Children = append(feature.Children, FeatureChild{Background: background(child.Background)})
		case child.Scenario != nil:
			feature.Children = append(feature.Children, FeatureChild{Scenario: scenario(child.Scenario)})
		case child.Rule != nil:
			feature.Children = append(feature.Children, FeatureChild{Rule: rule(child.Rule)})
		}
	}

	doc.Feature = feature
	return doc
}

func rule(r *messages.Rule) *Rule {
	out := &Rule{
		Location:    location(r.Location),
		Tags:        tags(r.Tags),
		Keyword:     r.Keyword,
		Name:        r.Name,
		Description: r.Description,
		Children:    []RuleChild{},
	}
	for _, child := range r.Children {
		switch {
		case child.Background != nil:
			out.Children = append(out.Children, RuleChild{Background: background(child.Background)})
		case child.Scenario != nil:
			out.Children = append(out.Children, RuleChild{Scenario: scenario(child.Scenario)})
		}
	}
	return out
}

func background(b *messages.Background) *Background {
	return &Background{
		Location:    location(b.Location),
		Keyword:     b.Keyword,
		Name:        b.Name,
		Description: b.Description,
		Steps:       steps(b.Steps),
	}
}

func scenario(s *messages.Scenario) *Scenario {
	out := &Scenario{
		Location:    location(s.Location),
		Tags:        tags(s.Tags),
		Keyword:     s.Keyword,
		Name:        s.Name,
		Description: s.Description,
		Steps:       steps(s.Steps),
	}
	for _, ex := range s.Examples {
		examples := Examples{
			Location:    location(ex.Location),
			Tags:        tags(ex.Tags),
			Keyword:     ex.Keyword,
			Name:        ex.Name,
			Description: ex.Description,
			TableBody:   []TableRow{},
		}
		if ex.TableHeader != nil {
			header := tableRow(ex.TableHeader)
			examples.TableHeader = &header
		}
		for _, row := range ex.TableBody {
			examples.TableBody = append(examples.TableBody, tableRow(row))
		}
		out.Examples = append(out.Examples, examples)
	}
	return out
}

func steps(in []*messages.Step) []Step {
	out := make([]Step, 0, len(in))
	for _, s := range in {
		step := Step{
			Location: location(s.Location),
			Keyword:  s.Keyword,
			Text:     s.Text,
		}
		if s.DocString != nil {
			step.DocString = &DocString{
				Location:  location(s.DocString.Location),
				MediaType: s.DocString.MediaType,
				Content:   s.DocString.Content,
				Delimiter: s.DocString.Delimiter,
			}
		}
		if s.DataTable != nil {
			table := &DataTable{
				Location: location(s.DataTable.Location),
				Rows:     make([]TableRow, 0, len(s.DataTable.Rows)),
			}
			for _, row := range s.DataTable.Rows {
				table.Rows = append(table.Rows, tableRow(row))
			}
			step.DataTable = table
		}
		out = append(out, step)
	}
	return out
}

func tableRow(r *messages.TableRow) TableRow {
	row := TableRow{
		Location: location(r.Location),
		Cells:    make([]TableCell, 0, len(r.Cells)),
	}
	for _, c := range r.Cells {
		row.Cells = append(row.Cells, TableCell{Location: location(c.Location), Value: c.Value})
	}
	return row
}

func tags(in []*messages.Tag) []Tag {
	out := make([]Tag, 0, len(in))
	for _, t := range in {
		out = append(out, Tag{Location: location(t.Location), Name: t.Name})
	}
	return out
}

func location(l *messages.Location) Location {
	if l == nil {
		return Location{}
	}
	return Location{Line: int(l.Line), Column: int(l.Column)}
}
