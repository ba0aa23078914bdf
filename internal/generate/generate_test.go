package generate

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is a canned llm.Client for tests.
type fakeClient struct {
	content string
	json    string
	err     error

	mu       sync.Mutex
	prompts  []string
	started  chan struct{} // if set, closed when GenerateContent is entered
	blocking chan struct{} // if set, GenerateContent blocks until closed
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.blocking != nil {
		<-f.blocking
	}
	return f.content, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.json, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestCanGenerate_DenyList(t *testing.T) {
	denied := []string{
		"name", "email", "phone", "location",
		"start_date", "end_date", "edu_start_date", "edu_end_date",
		"location_2", "start_date_3", "end_date_12",
	}
	for _, id := range denied {
		assert.False(t, CanGenerate(id), "%s should be denied", id)
	}

	allowed := []string{"summary", "description", "description_2", "skills", "job_title", "degree"}
	for _, id := range allowed {
		assert.True(t, CanGenerate(id), "%s should be allowed", id)
	}
}

func TestGenerateField(t *testing.T) {
	client := &fakeClient{content: "Led a team of five engineers."}
	r := NewResolver(client)

	doc := document.New()
	require.NoError(t, doc.SetFieldValue(document.SectionExperience, "company", "Acme"))

	out, err := r.GenerateField(context.Background(), "description", "Description", doc.Serialize())
	require.NoError(t, err)
	assert.Equal(t, "Led a team of five engineers.", out)

	// The document snapshot is part of the prompt context
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Acme")
	assert.Contains(t, client.prompts[0], "Description")

	assert.Empty(t, r.Pending(), "resolver should be idle after completion")
}

func TestGenerateField_DeniedField(t *testing.T) {
	r := NewResolver(&fakeClient{})

	_, err := r.GenerateField(context.Background(), "email", "Email", document.Content{})
	var notGen *ErrFieldNotGeneratable
	require.ErrorAs(t, err, &notGen)
	assert.Equal(t, "email", notGen.FieldID)
}

func TestGenerateField_SingleFieldAtATime(t *testing.T) {
	blocking := make(chan struct{})
	started := make(chan struct{})
	client := &fakeClient{content: "ok", blocking: blocking, started: started}
	r := NewResolver(client)

	done := make(chan error, 1)
	go func() {
		_, err := r.GenerateField(context.Background(), "summary", "Summary", document.Content{})
		done <- err
	}()

	// Wait until the first call has claimed the pending slot
	<-started
	assert.Equal(t, "summary", r.Pending())

	_, err := r.GenerateField(context.Background(), "description", "Description", document.Content{})
	assert.ErrorIs(t, err, ErrGenerationInFlight)

	close(blocking)
	require.NoError(t, <-done)
	assert.Empty(t, r.Pending())
}

func TestGenerateField_ClientFailure(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("model unavailable")}
	r := NewResolver(client)

	_, err := r.GenerateField(context.Background(), "summary", "Summary", document.Content{})
	require.Error(t, err)
	assert.Empty(t, r.Pending(), "pending slot must release on failure")
}

func TestGenerateCV_FromPrompt(t *testing.T) {
	client := &fakeClient{json: `{
		"title": "Platform Engineer CV",
		"data": {"personal": {"summary": "Experienced platform engineer."}}
	}`}
	g := NewGenerator(client)

	result, err := g.GenerateCV(context.Background(), Request{
		Kind:       KindPrompt,
		Text:       "I am a platform engineer with 8 years of Go experience",
		TemplateID: "classic",
	})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer CV", result.Title)
	assert.Equal(t, "Experienced platform engineer.", result.Data["personal"]["summary"])
}

func TestGenerateCV_FromData(t *testing.T) {
	client := &fakeClient{json: `{"title": "CV", "data": {}}`}
	g := NewGenerator(client)

	doc := document.New()
	require.NoError(t, doc.SetFieldValue(document.SectionPersonal, document.FieldName, "Jane"))

	result, err := g.GenerateCV(context.Background(), Request{
		Kind:       KindStructured,
		Data:       doc.Serialize(),
		TemplateID: "classic",
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Data)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Jane")
}

func TestGenerateCV_Preconditions(t *testing.T) {
	g := NewGenerator(&fakeClient{})

	_, err := g.GenerateCV(context.Background(), Request{Kind: KindPrompt, Text: "draft me"})
	assert.ErrorIs(t, err, ErrTemplateRequired)

	_, err = g.GenerateCV(context.Background(), Request{Kind: KindPrompt, TemplateID: "classic"})
	assert.ErrorIs(t, err, ErrPromptRequired)

	_, err = g.GenerateCV(context.Background(), Request{Kind: KindStructured, TemplateID: "classic"})
	assert.ErrorIs(t, err, ErrDataRequired)

	_, err = g.GenerateCV(context.Background(), Request{Kind: "mystery", TemplateID: "classic"})
	assert.Error(t, err)
}

func TestGenerateCV_RejectsMalformedModelOutput(t *testing.T) {
	client := &fakeClient{json: `{"data": {}}`} // missing title
	g := NewGenerator(client)

	_, err := g.GenerateCV(context.Background(), Request{
		Kind:       KindPrompt,
		Text:       "draft me",
		TemplateID: "classic",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}
