// Package pickle compiles Gherkin documents into pickles: concrete, fully
// resolved test-case descriptors, one per scenario and one per Examples row.
package pickle

import "github.com/chriserin/pickle/internal/parser"

type Pickle struct {
	URI      string `json:"uri"`
	Language string `json:"language"`
	Name     string `json:"name"`
	Tags     []Tag  `json:"tags"`
	// Locations is [scenario] for a plain scenario and [row, outline] for an
	// outline-derived pickle.
	Locations []parser.Location `json:"locations"`
	Steps     []Step            `json:"steps"`
}

type Tag struct {
	Name     string          `json:"name"`
	Location parser.Location `json:"location"`
}

// Step is a resolved step. Its location points at the first character of
// the step text, past the keyword.
type Step struct {
	Text      string            `json:"text"`
	Arguments []Argument        `json:"arguments"`
	Locations []parser.Location `json:"locations"`
}

// Argument holds exactly one of DocString or DataTable.
type Argument struct {
	DocString *DocString `json:"docString,omitempty"`
	DataTable *DataTable `json:"dataTable,omitempty"`
}

type DocString struct {
	Content     string          `json:"content"`
	ContentType string          `json:"contentType,omitempty"`
	Location    parser.Location `json:"location"`
}

type DataTable struct {
	Rows []Row `json:"rows"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

type Cell struct {
	Value    string          `json:"value"`
	Location parser.Location `json:"location"`
}

// TagNames returns the pickle's tag names in order.
func (p *Pickle) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}
