// Package pipeline provides the engraving pipeline shared by the CLI and the
// render server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read a score document (TOML or JSON) and validate it
//  2. Layout: build the notation elements and format every note slot
//  3. Render: draw the layout onto one canvas per output format (SVG, PNG, PDF, JSON)
//
// Rendered artifacts are cached by a hash of the decoded score and the
// options that change the output, so re-rendering an unchanged score skips
// layout and drawing entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "song.toml",
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/engrave/pkg/cache"
	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/render/textfmt"
	"github.com/matzehuels/engrave/pkg/score"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormats is used when neither the options nor the score name any.
var DefaultFormats = []string{FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// It is the JSON body the render server accepts.
type Options struct {
	// Source is a score file path. Ignored when Score is set.
	Source string `json:"source,omitempty"`
	// Score is an inline score document in ScoreFormat ("toml" or "json").
	Score       string `json:"score,omitempty"`
	ScoreFormat string `json:"score_format,omitempty"`

	// Formats and Scale override the score's [render] table.
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh ignores cached artifacts, then stores the fresh ones.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger     `json:"-"`
	Measure textfmt.Factory `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded score with defaults applied.
	Document *score.Document

	// ScoreHash is the content hash of Document.
	ScoreHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether rendering was served from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StaveCount      int
	NoteCount       int
	AnnotationCount int
	DecodeTime      time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid. Format names are
// case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(errors.Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the source and the explicit overrides.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" && o.Score == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or score is required")
	}
	if o.Score != "" && o.ScoreFormat == "" {
		o.ScoreFormat = "toml"
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale != 0 {
		if err := errors.ValidateScale(o.Scale); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Measure == nil {
		o.Measure = textfmt.Default
	}
	o.validated = true
	return nil
}

// ApplyDocument fills formats and scale the caller left unset from the
// score's [render] table.
func (o *Options) ApplyDocument(doc *score.Document) {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(doc.Render.Formats)
	}
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Scale == 0 {
		o.Scale = doc.Render.Scale
	}
	if o.Scale == 0 {
		o.Scale = score.DefaultScale
	}
}

// ArtifactKeyOpts returns cache key options for one format of doc.
func (o *Options) ArtifactKeyOpts(format string, doc *score.Document) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Width:  doc.Width,
		Height: doc.Height,
	}
	// Only raster output depends on the scale.
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
