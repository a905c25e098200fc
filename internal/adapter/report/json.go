package report

import (
	"encoding/json"
	"io"

	"github.com/bnema/audiobatch/internal/domain"
)

type jsonReport struct {
	*domain.BatchOutcome
	Counts domain.Counts `json:"counts"`
}

// RenderJSON writes the full outcome plus its counts as indented JSON.
func RenderJSON(w io.Writer, o *domain.BatchOutcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{BatchOutcome: o, Counts: o.Counts()})
}
