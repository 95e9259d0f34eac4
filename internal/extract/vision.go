package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/cardexhq/cardex/constants"
)

// visionMaxResults caps per-image annotations; cards carry a few dozen
// detections at most.
const visionMaxResults = 200

// VisionExtractor runs text detection through the Cloud Vision API. The
// first annotation is the full-text block and is skipped; the rest map onto
// fragments in the order the API detected them.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
	lang   string
	logger *slog.Logger
}

func NewVisionExtractor(ctx context.Context, lang string, logger *slog.Logger) (*VisionExtractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if lang == "" {
		lang = "en"
	}
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &VisionExtractor{client: client, lang: lang, logger: logger}, nil
}

func (v *VisionExtractor) Extract(ctx context.Context, image []byte) (Result, error) {
	start := time.Now()

	img, err := vision.NewImageFromReader(bytes.NewReader(image))
	if err != nil {
		return Result{}, fmt.Errorf("vision image: %w", err)
	}
	ictx := &visionpb.ImageContext{LanguageHints: []string{v.lang}}

	anns, err := v.client.DetectTexts(ctx, img, ictx, visionMaxResults)
	if err != nil {
		return Result{}, fmt.Errorf("vision detect: %w", err)
	}

	res := Result{
		Language: v.lang,
		Method:   string(constants.MethodVision),
	}
	if len(anns) > 1 {
		res.Fragments = make([]Fragment, 0, len(anns)-1)
		for _, ann := range anns[1:] {
			res.Fragments = append(res.Fragments, Fragment{
				Index: len(res.Fragments),
				Text:  ann.GetDescription(),
				Box:   quadFromPoly(ann.GetBoundingPoly()),
			})
		}
	}
	res.Duration = time.Since(start)

	v.logger.Debug("vision extraction done",
		"fragments", len(res.Fragments), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

func (v *VisionExtractor) Close() error {
	return v.client.Close()
}

func quadFromPoly(poly *visionpb.BoundingPoly) Quad {
	var out Quad
	if poly == nil {
		return out
	}
	for i, vert := range poly.GetVertices() {
		if i >= len(out) {
			break
		}
		out[i] = Point{X: int(vert.GetX()), Y: int(vert.GetY())}
	}
	return out
}
