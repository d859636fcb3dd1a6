package pipeline

import (
	"context"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/render/canvas"
	"github.com/matzehuels/engrave/pkg/score"
)

// Layout builds and formats doc. The result can be drawn any number of
// times.
func Layout(doc *score.Document, opts Options) (*score.Layout, error) {
	l, err := score.Build(doc, score.WithLogger(opts.Logger), score.WithTextFormatter(opts.Measure))
	if err != nil {
		return nil, err
	}
	if err := l.Format(); err != nil {
		return nil, err
	}
	return l, nil
}

// Render draws l onto a fresh surface per requested format.
func Render(ctx context.Context, l *score.Layout, doc *score.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(l, doc, format, opts.Scale)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(l *score.Layout, doc *score.Document, format string, scale float64) ([]byte, error) {
	surface, err := canvas.New(format, doc.Width, doc.Height, scale)
	if err != nil {
		return nil, err
	}
	if err := l.Draw(surface); err != nil {
		return nil, err
	}
	data, err := surface.Encode()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return data, nil
}
