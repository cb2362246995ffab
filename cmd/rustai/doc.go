package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rustai/internal/config"
	"rustai/internal/docgen"
	"rustai/internal/manifest"
	"rustai/internal/scan"
)

var (
	docWrite  bool
	docStrict bool
	docPrompt bool
	docStdout bool
	docModel  string
)

var docCmd = &cobra.Command{
	Use:   "doc <file:line[:column]>",
	Short: "Generate a doc comment for the construct at a position",
	Long: `Generate a /// doc comment for the function, struct or trait at or above a
position and insert it above the declaration, replacing any comment lines
already there.

The nearest declaration decides what is documented. When it is not a function,
struct or trait nothing is done and the command exits 0; use --strict to treat
that as an error.

The API key is read from the environment variable named by generation.apiKeyEnv
(OPENAI_API_KEY by default).

Examples:
  rustai doc src/binary.rs:21              # Preview the comment
  rustai doc src/binary.rs:21 --write      # Insert it and save the file
  rustai doc src/binary.rs:21 --stdout     # Print the updated file
  rustai doc src/binary.rs:21 --prompt     # Print the prompt, no API call`,
	Args: cobra.ExactArgs(1),
	RunE: runDoc,
}

func init() {
	docCmd.Flags().BoolVarP(&docWrite, "write", "w", false, "Save the updated file")
	docCmd.Flags().BoolVar(&docStrict, "strict", false, "Fail when there is nothing to document")
	docCmd.Flags().BoolVar(&docPrompt, "prompt", false, "Print the prompt without calling the model")
	docCmd.Flags().BoolVar(&docStdout, "stdout", false, "Print the updated file instead of a summary")
	docCmd.Flags().StringVar(&docModel, "model", "", "Override generation.model")
	rootCmd.AddCommand(docCmd)
}

// DocResponse reports a generated comment.
type DocResponse struct {
	File    string         `json:"file" yaml:"file"`
	Written bool           `json:"written" yaml:"written"`
	Result  *docgen.Result `json:"result" yaml:"result"`
}

// PromptResponse is the output of doc --prompt.
type PromptResponse struct {
	File   string       `json:"file" yaml:"file"`
	Target *scan.Target `json:"target" yaml:"target"`
	Prompt string       `json:"prompt" yaml:"prompt"`
}

func runDoc(cmd *cobra.Command, args []string) error {
	loc, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	buf, err := loadBuffer(loc.Path)
	if err != nil {
		return err
	}

	templates, err := docgen.LoadTemplates(promptsPath(appConfig.Generation.PromptsFile))
	if err != nil {
		return err
	}
	opts := documenterOptions(loc.Path, templates)

	if docPrompt {
		target, prompt, err := docgen.NewDocumenter(nil, opts...).Prompt(buf, loc.Cursor)
		if err != nil {
			return nothingToDocument(loc, err)
		}
		return writeResponse(cmd.OutOrStdout(), &PromptResponse{File: displayPath(loc.Path), Target: target, Prompt: prompt})
	}

	gen, err := newGenerator(appConfig.Generation, templates.System)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := docgen.NewDocumenter(gen, opts...).Document(ctx, buf, loc.Cursor)
	if err != nil {
		return nothingToDocument(loc, err)
	}

	if docWrite {
		if err := buf.Save(); err != nil {
			return fmt.Errorf("save %s: %w", loc.Path, err)
		}
		appLogger.Info("Saved file", "path", loc.Path)
	}
	if docStdout {
		_, err := fmt.Fprint(cmd.OutOrStdout(), buf.String())
		return err
	}
	return writeResponse(cmd.OutOrStdout(), &DocResponse{File: displayPath(loc.Path), Written: docWrite, Result: result})
}

// nothingToDocument swallows ErrNotFound unless --strict is set.
func nothingToDocument(loc location, err error) error {
	if errors.Is(err, scan.ErrNotFound) && !docStrict {
		appLogger.Info("Nothing to document", "location", loc.String())
		return nil
	}
	return err
}

// documenterOptions collects templates, crate metadata and scan settings for path.
func documenterOptions(path string, templates docgen.Templates) []docgen.Option {
	opts := []docgen.Option{
		docgen.WithTemplates(templates),
		docgen.WithScanOptions(scanOptions()...),
		docgen.WithLogger(appLogger),
	}

	pkg, err := manifest.ForSource(path)
	switch {
	case err == nil:
		appLogger.Debug("Using crate metadata", "crate", pkg.Name, "edition", pkg.Edition)
		opts = append(opts, docgen.WithCrate(pkg.Name, pkg.Edition))
	case errors.Is(err, manifest.ErrNoManifest):
		appLogger.Debug("No Cargo.toml above source file", "path", path)
	default:
		appLogger.Warn("Ignoring unreadable Cargo.toml", "error", err)
	}
	return opts
}

// promptsPath resolves a relative prompts file against the project root.
func promptsPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}

// newGenerator builds the chat client from the generation config.
func newGenerator(cfg config.GenerationConfig, systemPrompt string) (docgen.Generator, error) {
	model := cfg.Model
	if docModel != "" {
		model = docModel
	}
	client, err := docgen.NewOpenAIClient(docgen.ClientConfig{
		APIKey:       cfg.APIKey(),
		Model:        model,
		BaseURL:      cfg.BaseURL,
		SystemPrompt: systemPrompt,
		Temperature:  &cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
		Timeout:      cfg.Timeout(),
		Logger:       appLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("%s (set %s): %w", cfg.Provider, cfg.APIKeyEnv, err)
	}
	return client, nil
}

func formatDocHuman(resp *DocResponse) (string, error) {
	var b strings.Builder
	r := resp.Result
	b.WriteString(fmt.Sprintf("%s %s  %s:%d\n", r.Target.Kind, r.Target.Name, resp.File, r.InsertedAt+1))
	if r.Removed > 0 {
		b.WriteString(fmt.Sprintf("Replaced %d existing comment line(s)\n", r.Removed))
	}
	b.WriteString("\n" + r.Comment)
	if !resp.Written {
		b.WriteString("\n(not saved; use --write to update the file)\n")
	}
	return b.String(), nil
}

func formatPromptHuman(resp *PromptResponse) (string, error) {
	return resp.Prompt + "\n", nil
}
