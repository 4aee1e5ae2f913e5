package parser

// Layer 2: the document model handed to the pickle compiler and to
// gherkin-document observers. Built from the grammar engine's tree by Transform.

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type GherkinDocument struct {
	URI      string    `json:"uri,omitempty"`
	Feature  *Feature  `json:"feature,omitempty"`
	Comments []Comment `json:"comments"`
}

type Feature struct {
	Location    Location       `json:"location"`
	Tags        []Tag          `json:"tags"`
	Language    string         `json:"language"`
	Keyword     string         `json:"keyword"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Children    []FeatureChild `json:"children"`
}

// FeatureChild holds exactly one of Background, Scenario or Rule.
type FeatureChild struct {
	Background *Background `json:"background,omitempty"`
	Scenario   *Scenario   `json:"scenario,omitempty"`
	Rule       *Rule       `json:"rule,omitempty"`
}

type Rule struct {
	Location    Location    `json:"location"`
	Tags        []Tag       `json:"tags"`
	Keyword     string      `json:"keyword"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Children    []RuleChild `json:"children"`
}

// RuleChild holds exactly one of Background or Scenario.
type RuleChild struct {
	Background *Background `json:"background,omitempty"`
	Scenario   *Scenario   `json:"scenario,omitempty"`
}

type Background struct {
	Location    Location `json:"location"`
	Keyword     string   `json:"keyword"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       []Step   `json:"steps"`
}

type Scenario struct {
	Location    Location   `json:"location"`
	Tags        []Tag      `json:"tags"`
	Keyword     string     `json:"keyword"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Steps       []Step     `json:"steps"`
	Examples    []Examples `json:"examples,omitempty"`
}

// IsOutline reports whether the scenario is a template expanded per Examples row.
func (s *Scenario) IsOutline() bool {
	return len(s.Examples) > 0
}

type Step struct {
	Location  Location   `json:"location"`
	Keyword   string     `json:"keyword"` // verbatim, e.g. "Given "
	Text      string     `json:"text"`
	DocString *DocString `json:"docString,omitempty"`
	DataTable *DataTable `json:"dataTable,omitempty"`
}

type DocString struct {
	Location  Location `json:"location"`
	MediaType string   `json:"mediaType,omitempty"`
	Content   string   `json:"content"`
	Delimiter string   `json:"delimiter"`
}

type DataTable struct {
	Location Location   `json:"location"`
	Rows     []TableRow `json:"rows"`
}

type Examples struct {
	Location    Location   `json:"location"`
	Tags        []Tag      `json:"tags"`
	Keyword     string     `json:"keyword"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	TableHeader *TableRow  `json:"tableHeader,omitempty"`
	TableBody   []TableRow `json:"tableBody"`
}

type TableRow struct {
	Location Location    `json:"location"`
	Cells    []TableCell `json:"cells"`
}

type TableCell struct {
	Location Location `json:"location"`
	Value    string   `json:"value"`
}

type Tag struct {
	Location Location `json:"location"`
	Name     string   `json:"name"` // e.g. "@smoke"
}

type Comment struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}
