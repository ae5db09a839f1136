package generator

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

// extractBatch pulls a PredictionBatch out of raw model output. The model may
// wrap its JSON in code fences or prose; anything unparseable degrades to an
// empty batch rather than an error.
func extractBatch(raw string) *model.PredictionBatch {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")

	batch := &model.PredictionBatch{}
	if first == -1 || last == -1 || last <= first {
		return batch
	}

	if err := json.Unmarshal([]byte(cleaned[first:last+1]), batch); err != nil {
		zap.L().Warn("discarding unparseable generator output", zap.Error(err))
		return &model.PredictionBatch{}
	}

	batch.Sources = dedupeSources(batch.Sources)
	return batch
}

// dedupeSources keeps the first source seen for each URL, dropping entries
// with no URL at all.
func dedupeSources(sources []model.Source) []model.Source {
	seen := make(map[string]bool, len(sources))
	out := make([]model.Source, 0, len(sources))
	for _, s := range sources {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		if s.Title == "" {
			s.Title = "Source"
		}
		out = append(out, s)
	}
	return out
}
