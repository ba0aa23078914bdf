// Package render turns a document/template pairing into the HTML preview
// surface used for display and export.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/templates"
)

// ExperienceEntry is one work-experience block in the view model.
type ExperienceEntry struct {
	JobTitle    string
	Company     string
	Location    string
	StartDate   string
	EndDate     string
	Description string
}

// viewModel is the data shape the layout templates consume.
type viewModel struct {
	Title    string
	Name     string
	Email    string
	Phone    string
	Location string
	Summary  string

	Experience []ExperienceEntry

	Degree       string
	Institution  string
	EduStartDate string
	EduEndDate   string

	Skills    string
	SkillList []string
	Languages string
}

// HTML renders serialized document content through a layout template. The
// template body is sanitized before parsing; field values are escaped by
// html/template as usual.
func HTML(content document.Content, title string, layout templates.Template) (string, error) {
	body, err := Sanitize(layout.HTML)
	if err != nil {
		return "", &RenderError{Message: "failed to sanitize layout", Cause: err}
	}

	tmpl, err := template.New(layout.ID).Parse(body)
	if err != nil {
		return "", &TemplateError{Message: fmt.Sprintf("failed to parse layout %s", layout.ID), Cause: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildViewModel(content, title)); err != nil {
		return "", &RenderError{Message: fmt.Sprintf("failed to execute layout %s", layout.ID), Cause: err}
	}
	return buf.String(), nil
}

func buildViewModel(content document.Content, title string) viewModel {
	personal := content[document.SectionPersonal]
	education := content[document.SectionEducation]
	skills := content[document.SectionSkills]

	vm := viewModel{
		Title:    title,
		Name:     personal["name"],
		Email:    personal["email"],
		Phone:    personal["phone"],
		Location: personal["location"],
		Summary:  personal["summary"],

		Experience: experienceEntries(content[document.SectionExperience]),

		Degree:       education["degree"],
		Institution:  education["institution"],
		EduStartDate: education["edu_start_date"],
		EduEndDate:   education["edu_end_date"],

		Skills:    skills["skills"],
		Languages: skills["languages"],
	}

	for _, s := range strings.Split(vm.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			vm.SkillList = append(vm.SkillList, s)
		}
	}

	return vm
}

// experienceEntries groups flat experience field values back into blocks,
// ordered by block suffix. Entries with no content at all are dropped.
func experienceEntries(values map[string]string) []ExperienceEntry {
	suffixes := map[int]struct{}{}
	for id := range values {
		suffixes[blockSuffix(id)] = struct{}{}
	}

	order := make([]int, 0, len(suffixes))
	for s := range suffixes {
		order = append(order, s)
	}
	sort.Ints(order)

	var entries []ExperienceEntry
	for _, seq := range order {
		entry := ExperienceEntry{
			JobTitle:    values[blockField("job_title", seq)],
			Company:     values[blockField("company", seq)],
			Location:    values[blockField("location", seq)],
			StartDate:   values[blockField("start_date", seq)],
			EndDate:     values[blockField("end_date", seq)],
			Description: values[blockField("description", seq)],
		}
		if entry != (ExperienceEntry{}) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// blockSuffix extracts the numeric block suffix of a field id; unsuffixed
// ids belong to block 1.
func blockSuffix(fieldID string) int {
	idx := strings.LastIndex(fieldID, "_")
	if idx <= 0 {
		return 1
	}
	if n, err := strconv.Atoi(fieldID[idx+1:]); err == nil {
		return n
	}
	return 1
}

func blockField(base string, seq int) string {
	if seq <= 1 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, seq)
}
