// Package report summarizes classification runs.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/soiltex/internal/texture"
)

// Report is the summary of one classification batch: per-class counts in
// class order, plus how many input rows needed normalization.
type Report struct {
	ID        string         `json:"id"`
	System    string         `json:"system"`
	Samples   int            `json:"samples"`
	Unknown   int            `json:"unknown"`
	Anomalies int            `json:"anomalies"`
	Counts    map[string]int `json:"counts"`
	CreatedAt time.Time      `json:"created_at"`

	order []string
}

// New builds a report from a classifier's output. anomalies is the count of
// rows whose components did not sum to the ternary total.
func New(c *texture.Classifier, labels []string, anomalies int) *Report {
	r := &Report{
		ID:        uuid.NewString(),
		System:    c.System().Name,
		Samples:   len(labels),
		Anomalies: anomalies,
		Counts:    make(map[string]int),
		CreatedAt: time.Now().UTC(),
		order:     c.ClassOrder(),
	}
	for _, label := range labels {
		if label == texture.Unknown {
			r.Unknown++
			continue
		}
		r.Counts[label]++
	}
	return r
}

// String renders the report as a human-readable block, classes in class
// order, omitting empty classes.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "report %s\n", r.ID)
	fmt.Fprintf(&b, "system:    %s\n", r.System)
	fmt.Fprintf(&b, "samples:   %d\n", r.Samples)
	for _, class := range r.order {
		if n := r.Counts[class]; n > 0 {
			fmt.Fprintf(&b, "  %-18s %d\n", class, n)
		}
	}
	if r.Unknown > 0 {
		fmt.Fprintf(&b, "  %-18s %d\n", texture.Unknown, r.Unknown)
	}
	if r.Anomalies > 0 {
		fmt.Fprintf(&b, "anomalies: %d rows normalized to sum 100\n", r.Anomalies)
	}
	return b.String()
}
