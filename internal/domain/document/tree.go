package document

import "time"

// Kind distinguishes invoice documents from report documents
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindReport  Kind = "report"
)

// SectionKind identifies a section of the tree
type SectionKind string

const (
	SectionHeader      SectionKind = "header"
	SectionParties     SectionKind = "parties"
	SectionDetails     SectionKind = "details"
	SectionDescription SectionKind = "description"
	SectionSummary     SectionKind = "summary"
	SectionNotes       SectionKind = "notes"
	SectionMetrics     SectionKind = "metrics"
	SectionChart       SectionKind = "chart"
	SectionRows        SectionKind = "rows"
	SectionFooter      SectionKind = "footer"
)

// Emphasis is the display category shared by every output format
type Emphasis string

const (
	EmphasisNeutral  Emphasis = "neutral"
	EmphasisInfo     Emphasis = "info"
	EmphasisPositive Emphasis = "positive"
	EmphasisWarning  Emphasis = "warning"
	EmphasisNegative Emphasis = "negative"
)

// Field is one labelled value. Highlight marks rows such as Total or Balance Due.
type Field struct {
	Label     string   `json:"label"`
	Value     string   `json:"value"`
	Emphasis  Emphasis `json:"emphasis"`
	Highlight bool     `json:"highlight,omitempty"`
}

// Badge is a status marker shown in the header
type Badge struct {
	Label    string   `json:"label"`
	Emphasis Emphasis `json:"emphasis"`
}

// Table is a grid of cells with a fixed column list
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Section is one block of the document
type Section struct {
	Kind   SectionKind `json:"kind"`
	Title  string      `json:"title,omitempty"`
	Fields []Field     `json:"fields,omitempty"`
	Badges []Badge     `json:"badges,omitempty"`
	Text   string      `json:"text,omitempty"`
	Table  *Table      `json:"table,omitempty"`
}

// Document is the format-neutral representation handed to encoders
type Document struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Reference   string    `json:"reference"`
	Currency    string    `json:"currency"`
	GeneratedAt time.Time `json:"generated_at"`
	Page        PageSetup `json:"page"`
	Sections    []Section `json:"sections"`
	// Records holds raw values for tabular encodings. Nil when the document has no tabular layout.
	Records *Table `json:"records,omitempty"`
}

// Section returns the first section of the given kind
func (d *Document) Section(kind SectionKind) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// SectionKinds returns the section kinds in order
func (d *Document) SectionKinds() []SectionKind {
	kinds := make([]SectionKind, 0, len(d.Sections))
	for _, s := range d.Sections {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

// HasTabularLayout reports whether the document can be encoded as rows and columns
func (d *Document) HasTabularLayout() bool {
	return d.Records != nil
}

// Field looks up a field of the section by label
func (s *Section) Field(label string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}
