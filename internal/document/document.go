// Package document holds the canonical in-memory state of a CV being authored
// and exposes the mutation operations the wizard drives.
package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldKind identifies the input widget a field binds to.
type FieldKind string

// Field kinds supported by the section schema
const (
	KindText      FieldKind = "text"
	KindMultiline FieldKind = "multiline"
	KindDate      FieldKind = "date"
	KindEmail     FieldKind = "email"
	KindPhone     FieldKind = "phone"
)

// Field is a single labeled input and its current value.
// Values are always strings; dates are stored as ISO-like strings.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	Value       string    `json:"value"`
}

// Section is a named group of fields with a stable identifier.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Document is the CV under construction. The ID stays uuid.Nil until the
// first successful save assigns one; all subsequent saves update that ID.
type Document struct {
	ID         uuid.UUID
	Title      string
	TemplateID string
	Sections   []Section

	dirty     bool
	lastSaved *time.Time

	// Monotonic counter for experience block identifiers. Deliberately not
	// derived from the field count, so removals never recycle a suffix.
	blockSeq int
}

// Content is the serialized shape persistence and export collaborators
// consume: sectionID -> fieldID -> value.
type Content map[string]map[string]string

// New creates an empty document with the default section structure.
func New() *Document {
	return &Document{
		Sections: DefaultSections(),
		blockSeq: 1,
	}
}

// Dirty reports whether the document has unsaved changes since the last save.
// The flag is advisory only; it never blocks navigation or export.
func (d *Document) Dirty() bool {
	return d.dirty
}

// LastSaved returns the timestamp of the last successful save, or nil if the
// document has never been saved.
func (d *Document) LastSaved() *time.Time {
	return d.lastSaved
}

// MarkSaved records a successful save: the document adopts the assigned ID,
// the save timestamp becomes the dirty-tracking baseline, and the dirty flag
// clears.
func (d *Document) MarkSaved(id uuid.UUID, at time.Time) {
	d.ID = id
	t := at
	d.lastSaved = &t
	d.dirty = false
}

// markDirty sets the dirty flag, but only once a save baseline exists.
// A never-saved document has nothing to be out of sync with.
func (d *Document) markDirty() {
	if d.lastSaved != nil {
		d.dirty = true
	}
}

// SetTitle replaces the document title.
func (d *Document) SetTitle(title string) {
	d.Title = title
	d.markDirty()
}

// SetTemplate records the selected template. Switching templates never
// migrates or discards field data; only the rendering changes.
func (d *Document) SetTemplate(templateID string) {
	d.TemplateID = templateID
	d.markDirty()
}

// Section returns the section with the given ID, or nil if absent.
func (d *Document) Section(sectionID string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == sectionID {
			return &d.Sections[i]
		}
	}
	return nil
}

// SetFieldValue replaces one field's value. Emptiness is valid; no value
// validation happens here.
func (d *Document) SetFieldValue(sectionID, fieldID, value string) error {
	sec := d.Section(sectionID)
	if sec == nil {
		return fmt.Errorf("unknown section: %s", sectionID)
	}
	for i := range sec.Fields {
		if sec.Fields[i].ID == fieldID {
			sec.Fields[i].Value = value
			d.markDirty()
			return nil
		}
	}
	return fmt.Errorf("unknown field %s in section %s", fieldID, sectionID)
}

// FieldValue returns a field's current value. Missing fields read as empty.
func (d *Document) FieldValue(sectionID, fieldID string) string {
	sec := d.Section(sectionID)
	if sec == nil {
		return ""
	}
	for i := range sec.Fields {
		if sec.Fields[i].ID == fieldID {
			return sec.Fields[i].Value
		}
	}
	return ""
}

// Serialize flattens the sections into the Content mapping expected by the
// persistence and export collaborators.
func (d *Document) Serialize() Content {
	out := make(Content, len(d.Sections))
	for _, sec := range d.Sections {
		values := make(map[string]string, len(sec.Fields))
		for _, f := range sec.Fields {
			values[f.ID] = f.Value
		}
		out[sec.ID] = values
	}
	return out
}

// Hydrate overwrites current field values from previously saved content,
// preserving the fixed section/field structure. Only matching identifiers are
// filled; unmatched identifiers keep their defaults, which tolerates template
// or schema drift in either direction.
func (d *Document) Hydrate(content Content, templateID, title string) {
	if title != "" {
		d.Title = title
	}
	if templateID != "" {
		d.TemplateID = templateID
	}
	d.growExperienceBlocks(content[SectionExperience])
	for sectionID, values := range content {
		sec := d.Section(sectionID)
		if sec == nil {
			continue
		}
		for i := range sec.Fields {
			if v, ok := values[sec.Fields[i].ID]; ok {
				sec.Fields[i].Value = v
			}
		}
	}
	d.markDirty()
}
