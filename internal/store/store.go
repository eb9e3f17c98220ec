package store

import (
	"context"

	"github.com/omegalabs/studio/internal/models"
)

// Store defines the persistence interface for sessions. Persistence is
// best-effort from the core's point of view: hosts log and continue when a
// save fails, and the orchestration core never touches the store directly.
type Store interface {
	SaveSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListRecent(ctx context.Context, limit int) ([]models.SessionSummary, error)
	DeleteSession(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
