package wizard

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generate"
	"github.com/jonathan/cv-builder/internal/render"
	"github.com/jonathan/cv-builder/internal/subscription"
	"github.com/jonathan/cv-builder/internal/templates"
	"golang.org/x/sync/singleflight"
)

// State is the wizard's coarse lifecycle position.
type State string

// Wizard states. AI-assisted generation is a parallel mode that can merge
// into any state; there is no terminal state.
const (
	StateSelectingTemplate State = "selecting_template"
	StateEditing           State = "editing"
	StateGenerated         State = "generated"
)

// Config wires a controller to its collaborators. The subscription snapshot
// is passed in explicitly so entitlement checks need no network access.
type Config struct {
	UserID      uuid.UUID
	DisplayName string
	Snapshot    subscription.Snapshot

	Store     Store
	Fields    FieldGenerator
	Generator DocumentGenerator
	Exporter  Exporter
}

// Controller owns the document model and drives the authoring flow. It is
// built for a single interactive caller; concurrent duplicate triggers of the
// same operation kind share one flight instead of racing.
type Controller struct {
	cfg Config

	doc      *document.Document
	nav      *Navigator
	selector *templates.Selector

	state       State
	previewHTML string

	flight      singleflight.Group
	saving      atomic.Bool
	generating  atomic.Bool
	downloading atomic.Bool
}

// New creates a controller for a fresh, empty document. If the snapshot
// forbids CV creation the wizard refuses to open.
func New(cfg Config) (*Controller, error) {
	if !cfg.Snapshot.CanCreateCV {
		return nil, ErrCreationNotAllowed
	}
	doc := document.New()
	return &Controller{
		cfg:      cfg,
		doc:      doc,
		nav:      NewNavigator(len(doc.Sections)),
		selector: templates.NewSelector(cfg.Snapshot),
		state:    StateSelectingTemplate,
	}, nil
}

// Open creates a controller for an existing document, loading and hydrating
// it. On load failure the error is returned and no controller is produced.
func Open(ctx context.Context, cfg Config, id uuid.UUID) (*Controller, error) {
	doc := document.New()
	c := &Controller{
		cfg:      cfg,
		doc:      doc,
		nav:      NewNavigator(len(doc.Sections)),
		selector: templates.NewSelector(cfg.Snapshot),
		state:    StateEditing,
	}

	stored, err := cfg.Store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load CV: %w", err)
	}

	c.doc.Hydrate(stored.Content, stored.TemplateID, stored.Title)
	c.doc.MarkSaved(stored.ID, stored.UpdatedAt)
	if stored.TemplateID != "" {
		if tmpl, err := templates.Get(stored.TemplateID); err == nil {
			// Entitlement-checked adoption; a free plan opening a CV
			// that uses a premium template keeps editing content but
			// must re-select a permitted template.
			_ = c.selector.Select(tmpl)
		}
	}
	return c, nil
}

// State returns the wizard's current state.
func (c *Controller) State() State { return c.state }

// Document exposes the owned document model.
func (c *Controller) Document() *document.Document { return c.doc }

// Navigator exposes section traversal.
func (c *Controller) Navigator() *Navigator { return c.nav }

// SelectedTemplate returns the current template, or nil before selection.
func (c *Controller) SelectedTemplate() *templates.Template { return c.selector.Current() }

// PreviewHTML returns the rendered result produced by GenerateCV, or "".
func (c *Controller) PreviewHTML() string { return c.previewHTML }

// In-progress flags, one per operation kind, so duplicate triggers can be
// disabled at the interaction layer.
func (c *Controller) Saving() bool      { return c.saving.Load() }
func (c *Controller) Generating() bool  { return c.generating.Load() }
func (c *Controller) Downloading() bool { return c.downloading.Load() }
func (c *Controller) PendingField() string {
	if c.cfg.Fields == nil {
		return ""
	}
	return c.cfg.Fields.Pending()
}

// SelectTemplate adopts a template if the plan permits it. Accepting the
// first selection moves the wizard out of template selection and into the
// step editor at section 0.
func (c *Controller) SelectTemplate(t templates.Template) error {
	if err := c.selector.Select(t); err != nil {
		return err
	}
	c.doc.SetTemplate(t.ID)
	if c.state == StateSelectingTemplate {
		c.state = StateEditing
	}
	return nil
}

// SetField replaces one field's value.
func (c *Controller) SetField(sectionID, fieldID, value string) error {
	return c.doc.SetFieldValue(sectionID, fieldID, value)
}

// AddExperienceBlock appends a new experience entry.
func (c *Controller) AddExperienceBlock() error {
	return c.doc.AddExperienceBlock()
}

// RemoveExperienceBlock removes the experience entry at blockIndex.
func (c *Controller) RemoveExperienceBlock(blockIndex int) error {
	return c.doc.RemoveExperienceBlock(blockIndex)
}

// SuggestField asks the field generator for content and applies it to the
// field. Deny-listed fields and plan restrictions are rejected before any
// call; a generation failure leaves the field's prior value untouched.
func (c *Controller) SuggestField(ctx context.Context, sectionID, fieldID string) (string, error) {
	if !c.cfg.Snapshot.AllowsGeneration() {
		return "", ErrGenerationNotAllowed
	}
	sec := c.doc.Section(sectionID)
	if sec == nil {
		return "", fmt.Errorf("unknown section: %s", sectionID)
	}
	label := fieldID
	for _, f := range sec.Fields {
		if f.ID == fieldID {
			label = f.Label
			break
		}
	}

	content, err := c.cfg.Fields.GenerateField(ctx, fieldID, label, c.doc.Serialize())
	if err != nil {
		return "", err
	}
	if err := c.doc.SetFieldValue(sectionID, fieldID, content); err != nil {
		return "", err
	}
	return content, nil
}

// GenerateFromPrompt runs whole-document generation from a free-text prompt
// and destructively merges the result: matching section/field values are
// overwritten with no per-field confirmation, and the title is adopted only
// if previously empty.
func (c *Controller) GenerateFromPrompt(ctx context.Context, prompt string) error {
	return c.generateAndMerge(ctx, generate.Request{
		Kind:       generate.KindPrompt,
		Text:       prompt,
		TemplateID: c.doc.TemplateID,
	})
}

// GenerateFromContent improves the document's existing content in place,
// with the same destructive-merge semantics as GenerateFromPrompt.
func (c *Controller) GenerateFromContent(ctx context.Context) error {
	return c.generateAndMerge(ctx, generate.Request{
		Kind:       generate.KindStructured,
		Data:       c.doc.Serialize(),
		TemplateID: c.doc.TemplateID,
	})
}

func (c *Controller) generateAndMerge(ctx context.Context, req generate.Request) error {
	if !c.cfg.Snapshot.AllowsGeneration() {
		return ErrGenerationNotAllowed
	}

	_, err, _ := c.flight.Do("generate", func() (any, error) {
		c.generating.Store(true)
		defer c.generating.Store(false)

		result, err := c.cfg.Generator.GenerateCV(ctx, req)
		if err != nil {
			return nil, err
		}

		c.doc.Hydrate(result.Data, "", "")
		if c.doc.Title == "" && result.Title != "" {
			c.doc.SetTitle(result.Title)
		}
		return nil, nil
	})
	return err
}

// GenerateCV produces the rendered preview for the current document and
// template pairing and moves the wizard to the generated state. It persists
// nothing.
func (c *Controller) GenerateCV() error {
	tmpl := c.selector.Current()
	if tmpl == nil {
		return ErrNoTemplate
	}

	html, err := render.HTML(c.doc.Serialize(), c.doc.Title, *tmpl)
	if err != nil {
		return fmt.Errorf("failed to render CV: %w", err)
	}
	c.previewHTML = html
	c.state = StateGenerated
	return nil
}

// Save persists the document. Preconditions are checked before any network
// call; the first save creates and adopts the assigned identifier, later
// saves update it. On success the in-memory document is replaced with the
// canonical stored object and the dirty flag clears; on failure both the
// dirty flag and the last-saved marker are left untouched.
func (c *Controller) Save(ctx context.Context) error {
	if err := c.doc.ValidateForSave(); err != nil {
		return err
	}

	_, err, _ := c.flight.Do("save", func() (any, error) {
		c.saving.Store(true)
		defer c.saving.Store(false)

		req := SaveRequest{
			UserID:     c.cfg.UserID,
			Title:      c.doc.Title,
			TemplateID: c.doc.TemplateID,
			Content:    c.doc.Serialize(),
		}
		if tmpl := c.selector.Current(); tmpl != nil {
			if html, err := render.HTML(req.Content, req.Title, *tmpl); err == nil {
				req.HTMLContent = html
			}
		}

		var (
			stored *StoredDocument
			err    error
		)
		if c.doc.ID == uuid.Nil {
			stored, err = c.cfg.Store.Create(ctx, req)
		} else {
			stored, err = c.cfg.Store.Update(ctx, c.doc.ID, req)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save CV: %w", err)
		}

		c.doc.Hydrate(stored.Content, stored.TemplateID, stored.Title)
		c.doc.MarkSaved(stored.ID, stored.UpdatedAt)
		return nil, nil
	})
	return err
}

// Export renders the current document/template pairing to PDF and returns
// the download filename alongside the bytes. A failure produces no file.
func (c *Controller) Export(ctx context.Context) (string, []byte, error) {
	tmpl := c.selector.Current()
	if tmpl == nil {
		return "", nil, ErrNoTemplate
	}

	v, err, _ := c.flight.Do("export", func() (any, error) {
		c.downloading.Store(true)
		defer c.downloading.Store(false)

		html, err := render.HTML(c.doc.Serialize(), c.doc.Title, *tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to render CV: %w", err)
		}
		pdf, err := c.cfg.Exporter.PDF(ctx, html)
		if err != nil {
			return nil, fmt.Errorf("failed to export CV: %w", err)
		}
		return pdf, nil
	})
	if err != nil {
		return "", nil, err
	}
	return export.FileName(c.cfg.DisplayName), v.([]byte), nil
}
