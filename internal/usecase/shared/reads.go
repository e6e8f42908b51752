package shared

import (
	"context"

	"medslot/internal/domain/user"

	"github.com/google/uuid"
)

// AuthUserReader resolves users for authentication. It runs outside
// the unit of work; token issuance never joins a write transaction.
type AuthUserReader interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}
