package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/quorail/docshelf/internal/domain"
)

// Virtual section names spliced into the section list. They are derived
// views, not stored keys, and the insertion offsets are part of the API
// contract shared by all controlled documents.
const (
	MetadataSection        = "metadata"
	DocumentControlSection = "document_control"

	metadataIndex        = 6
	documentControlIndex = 10
)

// Document is one loaded controlled document (immutable value object):
// a name derived from the source file plus an ordered top-level mapping
// of named sections.
type Document struct {
	name string
	root Value
}

// New validates and creates a Document. The root must be a mapping.
func New(name string, root Value) (Document, error) {
	if name == "" {
		return Document{}, fmt.Errorf("document name is required")
	}
	if root.Kind() != KindMapping {
		return Document{}, fmt.Errorf("document %q: top level must be a mapping, got kind %d", name, root.Kind())
	}
	return Document{name: name, root: root}, nil
}

// Parse deserializes raw YAML into a Document, stripping trailing
// newlines from every string leaf.
func Parse(name string, data []byte) (Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	root, err := FromYAML(&node)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	doc, err := New(name, TrimTrailingNewlines(root))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return doc, nil
}

// Name returns the derived document name.
func (d Document) Name() string { return d.name }

// Keys returns the top-level section names in source order.
func (d Document) Keys() []string {
	keys := make([]string, len(d.root.entries))
	for i, e := range d.root.entries {
		keys[i] = e.Key
	}
	return keys
}

// Section looks up a top-level section by name.
func (d Document) Section(key string) (Value, bool) {
	return d.root.Get(key)
}

// MarshalJSON renders the full document with sections in source order.
func (d Document) MarshalJSON() ([]byte, error) {
	return d.root.MarshalJSON()
}

// SectionNames returns the document's top-level keys with the two
// virtual sections spliced in: "metadata" at index 6 and, after that
// insertion, "document_control" at index 10.
func (d Document) SectionNames() []string {
	names := d.Keys()
	names = insertAt(names, metadataIndex, MetadataSection)
	names = insertAt(names, documentControlIndex, DocumentControlSection)
	return names
}

// insertAt splices s into names at index i, clamping i to the list length.
func insertAt(names []string, i int, s string) []string {
	if i > len(names) {
		i = len(names)
	}
	names = append(names, "")
	copy(names[i+1:], names[i:])
	names[i] = s
	return names
}

// Metadata is the document-identity projection assembled from six
// header/footer fields.
type Metadata struct {
	DocumentType  Value `json:"document_type"`
	DocumentNo    Value `json:"document_no"`
	EffectiveDate Value `json:"effective_date"`
	DocumentRev   Value `json:"document_rev"`
	Title         Value `json:"title"`
	DocumentCode  Value `json:"document_code"`
}

// Metadata builds the metadata projection. Every source field is
// required; an absent one yields a MissingFieldError.
func (d Document) Metadata() (Metadata, error) {
	var m Metadata
	for _, f := range []struct {
		key string
		dst *Value
	}{
		{"type", &m.DocumentType},
		{"document_no", &m.DocumentNo},
		{"effective_date", &m.EffectiveDate},
		{"document_rev", &m.DocumentRev},
		{"title", &m.Title},
		{"document_code", &m.DocumentCode},
	} {
		v, ok := d.Section(f.key)
		if !ok {
			return Metadata{}, domain.NewMissingField(f.key)
		}
		*f.dst = v
	}
	return m, nil
}

// DocumentControl is the revision/approval projection. Fields absent
// from the document serialize as null.
type DocumentControl struct {
	RevisionHistory    Value `json:"revision_history"`
	PreparedBy         Value `json:"prepared_by"`
	ReviewedApprovedBy Value `json:"reviewed_approved_by"`
}

// DocumentControl builds the document-control projection.
func (d Document) DocumentControl() DocumentControl {
	get := func(key string) Value {
		if v, ok := d.Section(key); ok {
			return v
		}
		return Null()
	}
	return DocumentControl{
		RevisionHistory:    get("revision_history"),
		PreparedBy:         get("prepared_by"),
		ReviewedApprovedBy: get("reviewed_approved_by"),
	}
}
