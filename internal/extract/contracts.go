package extract

import (
	"context"
	"time"
)

// Point is one corner of a fragment's bounding quadrilateral.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Quad is the four corners of a detected text region, clockwise from top-left.
type Quad [4]Point

// Fragment is one recognized string plus its position in detection order.
// The geometry feeds the preview overlay only; classification reads Text.
type Fragment struct {
	Index      int     `json:"index"`
	Text       string  `json:"text"`
	Box        Quad    `json:"box"`
	Confidence float32 `json:"confidence"`
}

// Result is the outcome of one extraction run.
type Result struct {
	Fragments []Fragment    `json:"fragments"`
	Language  string        `json:"language"`
	Method    string        `json:"method"`
	Duration  time.Duration `json:"-"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// Texts returns the fragment texts in detection order, the classifier input.
func (r Result) Texts() []string {
	out := make([]string, len(r.Fragments))
	for i, f := range r.Fragments {
		out[i] = f.Text
	}
	return out
}

// FragmentExtractor turns raw image bytes into an ordered fragment list.
// The OCR engine behind it is a black box; errors here are extraction
// failures in the sense of the error-handling contract (reported, no partial
// record shown).
type FragmentExtractor interface {
	Extract(ctx context.Context, image []byte) (Result, error)
}
