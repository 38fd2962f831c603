package ports

import (
	"context"

	"github.com/smartadmin/user-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user records. The
// store provides atomic single-document operations; Update applies merge
// semantics (only the given fields change, never a full replace).
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}
