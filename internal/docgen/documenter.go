package docgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rustai/internal/buffer"
	"rustai/internal/scan"
)

// Result describes one generated doc comment.
type Result struct {
	Target  *scan.Target `json:"target" yaml:"target"`
	Prompt  string       `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Comment string       `json:"comment" yaml:"comment"`
	// InsertedAt is the line the comment starts on after insertion.
	InsertedAt int `json:"insertedAt" yaml:"insertedAt"`
	// Removed counts the comment lines above the declaration that were replaced.
	Removed int `json:"removed" yaml:"removed"`
}

// Documenter finds the construct at a cursor, generates a comment for it and
// inserts the comment into the buffer.
type Documenter struct {
	gen       Generator
	templates Templates
	crate     string
	edition   string
	scanOpts  []scan.Option
	logger    *slog.Logger
}

// Option configures a Documenter.
type Option func(*Documenter)

// WithTemplates replaces the built-in prompts.
func WithTemplates(t Templates) Option {
	return func(d *Documenter) {
		d.templates = t
	}
}

// WithCrate names the crate and edition the source file belongs to.
func WithCrate(name, edition string) Option {
	return func(d *Documenter) {
		d.crate = name
		d.edition = edition
	}
}

// WithScanOptions passes options to the scanner built for each call.
func WithScanOptions(opts ...scan.Option) Option {
	return func(d *Documenter) {
		d.scanOpts = append(d.scanOpts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Documenter) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDocumenter creates a Documenter that uses gen for text generation.
func NewDocumenter(gen Generator, opts ...Option) *Documenter {
	d := &Documenter{
		gen:       gen,
		templates: DefaultTemplates(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Prompt locates the construct at cursor and renders its prompt without
// calling the generator.
func (d *Documenter) Prompt(buf *buffer.Buffer, cursor scan.Position) (*scan.Target, string, error) {
	opts := append([]scan.Option{scan.WithLogger(d.logger)}, d.scanOpts...)
	target, err := scan.NewScanner(buf, opts...).Current(cursor)
	if err != nil {
		return nil, "", err
	}

	data := PromptData{
		Body:    buf.Text(target.Extent),
		Crate:   d.crate,
		Edition: d.edition,
	}
	if target.Owner != nil {
		data.Owner = target.Owner.Name
	}
	prompt, err := d.templates.Render(target.Kind, data)
	if err != nil {
		return nil, "", err
	}
	return target, prompt, nil
}

// Document generates a comment for the construct at cursor and inserts it
// above the declaration. The buffer is left unchanged on error.
func (d *Documenter) Document(ctx context.Context, buf *buffer.Buffer, cursor scan.Position) (*Result, error) {
	if d.gen == nil {
		return nil, ErrNotConfigured
	}

	target, prompt, err := d.Prompt(buf, cursor)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("Generating doc comment", "kind", target.Kind, "name", target.Name, "line", target.Extent.Anchor.Line)

	text, err := d.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrGenerationFailed) || errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	comment := CleanComment(target.Indent, text)
	if comment == "" {
		return nil, fmt.Errorf("%w: generator returned no comment text", ErrGenerationFailed)
	}

	line := target.Extent.Anchor.Line
	removed, err := buf.InsertDocComment(line, comment)
	if err != nil {
		return nil, err
	}
	d.logger.Info("Inserted doc comment",
		"name", target.Name,
		"lines", strings.Count(comment, "\n"),
		"replaced", removed,
	)

	return &Result{
		Target:     target,
		Prompt:     prompt,
		Comment:    comment,
		InsertedAt: line - removed,
		Removed:    removed,
	}, nil
}
