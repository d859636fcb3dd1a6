package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/engrave/pkg/cache"
	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/score"
)

// Decode reads the score named by opts.
func Decode(opts Options) (*score.Document, error) {
	if opts.Score != "" {
		return score.Decode([]byte(opts.Score), opts.ScoreFormat)
	}
	return score.Load(opts.Source)
}

// HashDocument hashes the canonical JSON form of doc, so that the same score
// written as TOML or JSON shares cache entries.
func HashDocument(doc *score.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize score for cache key")
	}
	return cache.Hash(data), nil
}

// source names where a score came from in logs and hooks.
func (o *Options) source() string {
	if o.Score != "" {
		return "-"
	}
	return o.Source
}
