package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generate"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/store"
	"github.com/jonathan/cv-builder/internal/subscription"
	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/wizard"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a CV end-to-end and export it as PDF",
	Long: `Drives the CV wizard non-interactively: select a template, fill section
fields from a config file, optionally draft content from a free-text prompt,
save to the document store, and export the result as PDF.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runBuildCmd,
}

var (
	buildConfigPath string
	buildTitle      string
	buildTemplate   string
	buildPrompt     string
	buildName       string
	buildEmail      string
	buildOutput     string
	buildStoreURL   string
	buildAPIKey     string
	buildPlan       string
	buildVerbose    bool
)

func init() {
	// Config file flag (processed first)
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	buildCmd.Flags().StringVar(&buildTitle, "title", "", "CV title")
	buildCmd.Flags().StringVarP(&buildTemplate, "template", "t", "", "Template id (classic, compact, modern, executive)")
	buildCmd.Flags().StringVarP(&buildPrompt, "prompt", "p", "", "Free-text prompt to draft CV content with AI")
	buildCmd.Flags().StringVarP(&buildName, "name", "n", "", "Candidate full name")
	buildCmd.Flags().StringVar(&buildEmail, "email", "", "Candidate email")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "PDF output path (defaults to the download filename in the current directory)")
	buildCmd.Flags().StringVar(&buildStoreURL, "store-url", "", "Document-store base URL (optional; skips persistence when unset)")
	buildCmd.Flags().StringVar(&buildPlan, "plan", "", "Subscription plan (free, pro)")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	buildCmd.Flags().StringVar(&buildAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(buildCmd)
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if buildConfigPath != "" {
		loadedCfg, err := config.LoadConfig(buildConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if buildVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", buildConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("title") {
		cfg.Title = buildTitle
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = buildTemplate
	}
	if cmd.Flags().Changed("prompt") {
		cfg.Prompt = buildPrompt
	}
	if cmd.Flags().Changed("name") {
		cfg.Name = buildName
	}
	if cmd.Flags().Changed("email") {
		cfg.Email = buildEmail
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = buildOutput
	}
	if cmd.Flags().Changed("store-url") {
		cfg.StoreURL = buildStoreURL
	}
	if cmd.Flags().Changed("plan") {
		cfg.Plan = buildPlan
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = buildAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = buildVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Title:    "My CV",
		Plan:     subscription.PlanFree,
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		StoreURL: os.Getenv("CV_BUILDER_STORE_URL"),
	}
	cfg = cfg.MergeWithDefaults(defaults)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Template == "" {
		return fmt.Errorf("a template is required (--template or config 'template')")
	}

	// Step 4: Wire the wizard collaborators
	wcfg := wizard.Config{
		DisplayName: cfg.Name,
		Snapshot:    subscription.ForPlan(cfg.Plan, 0),
		Exporter:    export.NewExporter(),
	}
	if cfg.StoreURL != "" {
		wcfg.Store = store.New(cfg.StoreURL, os.Getenv("CV_BUILDER_TOKEN"))
	}
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		wcfg.Fields = generate.NewResolver(client)
		wcfg.Generator = generate.NewGenerator(client)
	}

	w, err := wizard.New(wcfg)
	if err != nil {
		return err
	}

	// Step 5: Select the template
	tmpl, err := templates.Get(cfg.Template)
	if err != nil {
		return err
	}
	if err := w.SelectTemplate(tmpl); err != nil {
		return err
	}

	// Step 6: Fill the document
	w.Document().SetTitle(cfg.Title)
	if cfg.Name != "" {
		_ = w.SetField(document.SectionPersonal, document.FieldName, cfg.Name)
	}
	if cfg.Email != "" {
		_ = w.SetField(document.SectionPersonal, document.FieldEmail, cfg.Email)
	}
	if err := applyValues(w, cfg.Values); err != nil {
		return err
	}

	// Step 7: Optionally draft content from a prompt
	if cfg.Prompt != "" {
		if wcfg.Generator == nil {
			return fmt.Errorf("a Gemini API key is required for --prompt (--api-key or GEMINI_API_KEY)")
		}
		if cfg.Verbose {
			fmt.Println("Drafting CV content from prompt...")
		}
		if err := w.GenerateFromPrompt(ctx, cfg.Prompt); err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
	}

	// Step 8: Persist when a store is configured
	if wcfg.Store != nil {
		if err := w.Save(ctx); err != nil {
			return err
		}
		if cfg.Verbose {
			fmt.Printf("Saved CV %s\n", w.Document().ID)
		}
	}

	// Step 9: Step through the sections to the end, then render and export
	for !w.Navigator().IsLast() {
		if cfg.Verbose {
			sec := w.Document().Sections[w.Navigator().Index()]
			fmt.Printf("Section %d: %s\n", w.Navigator().Index()+1, sec.Title)
		}
		w.Navigator().Next()
	}
	if err := w.GenerateCV(); err != nil {
		return err
	}
	filename, pdf, err := w.Export(ctx)
	if err != nil {
		return err
	}

	outPath := cfg.Output
	if outPath == "" {
		outPath = filename
	}
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	abs, _ := filepath.Abs(outPath)
	fmt.Printf("Exported %s (%d bytes)\n", abs, len(pdf))
	return nil
}

// applyValues copies sectionId -> fieldId -> value from the config into the
// document, growing experience blocks first so suffixed field ids resolve.
func applyValues(w *wizard.Controller, values map[string]map[string]string) error {
	if exp := values[document.SectionExperience]; len(exp) > 0 {
		maxBlock := 1
		for id := range exp {
			var n int
			if _, err := fmt.Sscanf(suffixOf(id), "%d", &n); err == nil && n > maxBlock {
				maxBlock = n
			}
		}
		for i := 1; i < maxBlock; i++ {
			if err := w.AddExperienceBlock(); err != nil {
				return err
			}
		}
	}

	for sectionID, fields := range values {
		for fieldID, value := range fields {
			if err := w.SetField(sectionID, fieldID, value); err != nil {
				return fmt.Errorf("config value %s.%s: %w", sectionID, fieldID, err)
			}
		}
	}
	return nil
}

// suffixOf returns the trailing block-number suffix of a field id, or "".
func suffixOf(fieldID string) string {
	for i := len(fieldID) - 1; i >= 0; i-- {
		if fieldID[i] == '_' {
			return fieldID[i+1:]
		}
		if fieldID[i] < '0' || fieldID[i] > '9' {
			return ""
		}
	}
	return ""
}
