package document

import (
	"fmt"
	"sort"
)

// Well-known section identifiers
const (
	SectionPersonal   = "personal"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

// Well-known personal field identifiers
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldSummary  = "summary"
)

// ExperienceBlockSize is the number of fields in one experience entry.
const ExperienceBlockSize = 6

// experienceBlockSpec is the repeating field template for the experience
// section. New blocks are stamped from this with a numeric suffix.
var experienceBlockSpec = []Field{
	{ID: "job_title", Label: "Job Title", Kind: KindText, Placeholder: "e.g. Senior Software Engineer"},
	{ID: "company", Label: "Company", Kind: KindText, Placeholder: "e.g. Acme Corp"},
	{ID: "location", Label: "Location", Kind: KindText, Placeholder: "City, Country"},
	{ID: "start_date", Label: "Start Date", Kind: KindDate},
	{ID: "end_date", Label: "End Date", Kind: KindDate},
	{ID: "description", Label: "Description", Kind: KindMultiline, Placeholder: "What did you achieve in this role?"},
}

// DefaultSections returns the fixed starting section structure: personal
// details, one experience block, education, and skills.
func DefaultSections() []Section {
	return []Section{
		{
			ID:    SectionPersonal,
			Title: "Personal Details",
			Fields: []Field{
				{ID: FieldName, Label: "Full Name", Kind: KindText, Placeholder: "Jane Doe"},
				{ID: FieldEmail, Label: "Email", Kind: KindEmail, Placeholder: "jane@example.com"},
				{ID: FieldPhone, Label: "Phone", Kind: KindPhone},
				{ID: FieldLocation, Label: "Location", Kind: KindText, Placeholder: "City, Country"},
				{ID: FieldSummary, Label: "Professional Summary", Kind: KindMultiline},
			},
		},
		{
			ID:     SectionExperience,
			Title:  "Work Experience",
			Fields: newExperienceBlock(1),
		},
		{
			ID:    SectionEducation,
			Title: "Education",
			Fields: []Field{
				{ID: "degree", Label: "Degree", Kind: KindText, Placeholder: "e.g. BSc Computer Science"},
				{ID: "institution", Label: "Institution", Kind: KindText},
				{ID: "edu_start_date", Label: "Start Date", Kind: KindDate},
				{ID: "edu_end_date", Label: "End Date", Kind: KindDate},
			},
		},
		{
			ID:    SectionSkills,
			Title: "Skills",
			Fields: []Field{
				{ID: "skills", Label: "Skills", Kind: KindMultiline, Placeholder: "Comma-separated skills"},
				{ID: "languages", Label: "Languages", Kind: KindText},
			},
		},
	}
}

// newExperienceBlock stamps the repeating field template with a block suffix.
// The first block keeps the bare identifiers for compatibility with content
// saved before repeated blocks existed.
func newExperienceBlock(seq int) []Field {
	fields := make([]Field, len(experienceBlockSpec))
	copy(fields, experienceBlockSpec)
	if seq > 1 {
		for i := range fields {
			fields[i].ID = fmt.Sprintf("%s_%d", fields[i].ID, seq)
		}
	}
	return fields
}

// AddExperienceBlock appends a new empty experience entry. Identifiers come
// from a monotonic counter, so a suffix is never reused within a session even
// after removals.
func (d *Document) AddExperienceBlock() error {
	sec := d.Section(SectionExperience)
	if sec == nil {
		return fmt.Errorf("unknown section: %s", SectionExperience)
	}
	d.blockSeq++
	sec.Fields = append(sec.Fields, newExperienceBlock(d.blockSeq)...)
	d.markDirty()
	return nil
}

// RemoveExperienceBlock removes the block-sized contiguous slice of fields at
// blockIndex. The first block is protected so at least one entry remains.
func (d *Document) RemoveExperienceBlock(blockIndex int) error {
	if blockIndex == 0 {
		return ErrFirstBlockProtected
	}
	sec := d.Section(SectionExperience)
	if sec == nil {
		return fmt.Errorf("unknown section: %s", SectionExperience)
	}
	start := blockIndex * ExperienceBlockSize
	end := start + ExperienceBlockSize
	if blockIndex < 0 || end > len(sec.Fields) {
		return fmt.Errorf("experience block index out of range: %d", blockIndex)
	}
	sec.Fields = append(sec.Fields[:start], sec.Fields[end:]...)
	d.markDirty()
	return nil
}

// growExperienceBlocks appends an experience block for every suffix that
// appears in incoming values but not yet in the document. Saved content can
// carry any suffix set because removals leave gaps in the sequence; existing
// blocks and their values are never touched.
func (d *Document) growExperienceBlocks(values map[string]string) {
	sec := d.Section(SectionExperience)
	if sec == nil || len(values) == 0 {
		return
	}

	have := map[string]bool{}
	for _, f := range sec.Fields {
		have[f.ID] = true
	}

	missing := map[int]bool{}
	for id := range values {
		if have[id] {
			continue
		}
		for _, spec := range experienceBlockSpec {
			var n int
			if _, err := fmt.Sscanf(id, spec.ID+"_%d", &n); err == nil && n > 1 {
				missing[n] = true
			}
		}
	}

	suffixes := make([]int, 0, len(missing))
	for n := range missing {
		suffixes = append(suffixes, n)
	}
	sort.Ints(suffixes)

	for _, n := range suffixes {
		sec.Fields = append(sec.Fields, newExperienceBlock(n)...)
		if n > d.blockSeq {
			d.blockSeq = n
		}
	}
}

// ExperienceBlockCount returns the number of experience entries currently in
// the document.
func (d *Document) ExperienceBlockCount() int {
	sec := d.Section(SectionExperience)
	if sec == nil {
		return 0
	}
	return len(sec.Fields) / ExperienceBlockSize
}
