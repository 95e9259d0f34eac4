// Package preview holds classified records between the upload action and the
// user's explicit confirmation. Each interaction owns a token with a TTL, so
// independent uploads cannot cross-talk.
package preview

import (
	"context"
	"time"

	"github.com/cardexhq/cardex/internal/entity"
	"github.com/cardexhq/cardex/internal/extract"
)

// Preview is one pending record awaiting confirm-upload.
type Preview struct {
	Token     string             `json:"token"`
	Card      entity.Card        `json:"card"`
	Fragments []extract.Fragment `json:"fragments"`
	Warnings  []string           `json:"warnings,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Store stashes pending previews under their token until they are redeemed,
// expire, or are discarded. Get on a missing or expired token reports
// common.ErrNotFound.
type Store interface {
	Put(ctx context.Context, p *Preview) error
	Get(ctx context.Context, token string) (*Preview, error)
	Delete(ctx context.Context, token string) error
}
