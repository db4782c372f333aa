package storage

import (
	"context"
	"errors"
)

// Well-known blob keys. These names are the persistence contract: a catalog
// written by one build must load in the next.
const (
	KeyPredictions  = "winx_predictions"
	KeyUser         = "winx_user"
	KeyDarkMode     = "winx_dark_mode"
	KeyTeamLogos    = "winx_team_logos"
	KeyProfileImage = "winx_profile_image"
	KeyAdData       = "winx_ad_data"
	KeyStats        = "winx_stats"
)

// ErrNotFound is returned by Get for keys that were never written
// or have been deleted.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durable key→blob substrate. Writes are synchronous and
// assumed reliable; there is no retry or partial-write recovery.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
