package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/pipeline"
)

// stdinName is the base name for artifacts of a score read from stdin.
const stdinName = "score"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated output formats
	scoreFormat string  // format of a score read from stdin: toml or json
	scale       float64 // PNG scale factor; 0 keeps the score's
	noCache     bool    // bypass the artifact cache entirely
	refresh     bool    // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scoreFormat: "toml"}

	cmd := &cobra.Command{
		Use:   "render [score]",
		Short: "Engrave a score document to SVG, PNG, PDF or JSON",
		Long: `Engrave a score document to SVG, PNG, PDF or JSON.

The score is a TOML or JSON file (chosen by extension) describing staves,
barlines, notes and annotations. Use "-" to read the score from stdin.

Formats and scale default to the score's [render] table, then to svg at 2x.
Artifacts are cached by score content, so re-rendering an unchanged score is
instant. Use --refresh to force a re-render.`,
		Example: `  engrave render song.toml
  engrave render song.toml -f svg,pdf -o out/song
  cat song.json | engrave render - --score-format json -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.scoreFormat, "score-format", opts.scoreFormat, "format of a score read from stdin: toml, json")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// runRender engraves input and writes one file per artifact.
func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	logger := loggerFromContext(ctx)

	opts := pipeline.Options{
		Formats: parseFormats(ro.formats),
		Scale:   ro.scale,
		Refresh: ro.refresh,
		Logger:  logger,
	}
	name := input
	if input == "-" {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "read score from stdin")
		}
		opts.Score, opts.ScoreFormat = string(data), ro.scoreFormat
		name = "stdin"
	} else {
		opts.Source = input
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "initialize runner")
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, c.errOut, "Engraving "+name+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Engraving failed")
		return err
	}
	spinner.Stop()

	formats := artifactFormats(result.Artifacts)
	paths, err := outputPaths(ro.output, input, formats)
	if err != nil {
		return err
	}
	for _, format := range formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", paths[format])
		}
	}
	prog.done("Engraved " + name)

	printSuccess("Engraved %s", name)
	for _, format := range formats {
		printFile(paths[format], len(result.Artifacts[format]))
	}
	printStats(result.Stats.StaveCount, result.Stats.NoteCount, result.Stats.AnnotationCount, result.CacheInfo.RenderHit)
	return nil
}

// artifactFormats returns the formats present in artifacts in the canonical
// svg, pdf, png, json order.
func artifactFormats(artifacts map[string][]byte) []string {
	var formats []string
	for _, f := range errors.Formats {
		if _, ok := artifacts[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}

// outputPaths maps every format to the file it is written to. A single
// format goes to output verbatim; several share output as a base path with
// any format extension stripped. Without output the paths derive from input.
func outputPaths(output, input string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
	} else {
		base := basePath(output, input)
		for _, f := range formats {
			paths[f] = base + "." + f
		}
	}
	for _, p := range paths {
		if err := errors.ValidateOutputPath(p); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// basePath derives the base output path from the output and input paths.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return stdinName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(errors.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
