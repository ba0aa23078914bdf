package render

import (
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent() document.Content {
	doc := document.New()
	_ = doc.SetFieldValue(document.SectionPersonal, document.FieldName, "Jane Doe")
	_ = doc.SetFieldValue(document.SectionPersonal, document.FieldEmail, "jane@example.com")
	_ = doc.SetFieldValue(document.SectionPersonal, document.FieldSummary, "Engineer with Go & SQL experience")
	_ = doc.SetFieldValue(document.SectionExperience, "job_title", "Engineer")
	_ = doc.SetFieldValue(document.SectionExperience, "company", "Acme")
	_ = doc.SetFieldValue(document.SectionSkills, "skills", "Go, SQL, Kubernetes")
	return doc.Serialize()
}

func TestHTML_AllCatalogTemplates(t *testing.T) {
	content := sampleContent()
	for _, layout := range templates.All() {
		t.Run(layout.ID, func(t *testing.T) {
			html, err := HTML(content, "My Resume", layout)
			require.NoError(t, err)
			assert.Contains(t, html, "Jane Doe")
			assert.Contains(t, html, "jane@example.com")
			assert.Contains(t, html, `id="cv-preview"`)
		})
	}
}

func TestHTML_EscapesFieldValues(t *testing.T) {
	content := sampleContent()
	content[document.SectionPersonal]["name"] = `<script>alert("x")</script>`

	layout, err := templates.Get("classic")
	require.NoError(t, err)

	html, err := HTML(content, "My Resume", layout)
	require.NoError(t, err)
	assert.NotContains(t, html, `<script>alert`)
}

func TestHTML_MultipleExperienceBlocksInOrder(t *testing.T) {
	doc := document.New()
	require.NoError(t, doc.AddExperienceBlock())
	_ = doc.SetFieldValue(document.SectionPersonal, document.FieldName, "Jane")
	_ = doc.SetFieldValue(document.SectionExperience, "company", "First Corp")
	_ = doc.SetFieldValue(document.SectionExperience, "company_2", "Second Corp")

	layout, err := templates.Get("classic")
	require.NoError(t, err)

	html, err := HTML(doc.Serialize(), "CV", layout)
	require.NoError(t, err)
	first := strings.Index(html, "First Corp")
	second := strings.Index(html, "Second Corp")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestExperienceEntries_DropsEmptyBlocks(t *testing.T) {
	entries := experienceEntries(map[string]string{
		"job_title":   "Engineer",
		"company":     "Acme",
		"job_title_2": "",
		"company_2":   "",
	})
	require.Len(t, entries, 1)
	assert.Equal(t, "Acme", entries[0].Company)
}

func TestSanitize(t *testing.T) {
	dirty := `<html><body onload="evil()"><p>ok</p><script>evil()</script>` +
		`<iframe src="x"></iframe><a href="javascript:evil()">link</a></body></html>`

	clean, err := Sanitize(dirty)
	require.NoError(t, err)
	assert.NotContains(t, clean, "<script")
	assert.NotContains(t, clean, "<iframe")
	assert.NotContains(t, clean, "onload")
	assert.NotContains(t, clean, "javascript:")
	assert.Contains(t, clean, "<p>ok</p>")
	assert.Contains(t, clean, "link")
}
