package ports

import (
	"context"

	"github.com/smartadmin/user-api/internal/core/domain"
)

// Actor is the authenticated caller performing an operation, extracted from
// a verified token by the transport layer.
type Actor struct {
	ID   string
	Role domain.Role
}

// NewUserInput is the payload for creating a user. All fields are validated
// by the directory service; missing fields are simply invalid.
type NewUserInput struct {
	Document     string
	DocumentType string
	Role         string
	Name         string
	LastName1    string
	LastName2    string
	Email        string
	Phone        string
	Password     string
	RePassword   string
}

// UpdateUserInput carries a partial update. Nil means "field not present".
type UpdateUserInput struct {
	Name      *string
	LastName1 *string
	LastName2 *string
	Email     *string
	Phone     *string
	Role      *string
	Password  *string
}

// UserService is the directory service orchestrating validation,
// authorization, credential transforms, and store operations.
type UserService interface {
	// GetUsers returns every user whose role is visible to actorRole,
	// password hashes stripped.
	GetUsers(ctx context.Context, actorRole domain.Role) ([]*domain.User, error)
	// AddUser validates, checks uniqueness, authorizes, hashes the password,
	// and persists a new record, returning its id.
	AddUser(ctx context.Context, actorRole domain.Role, input NewUserInput) (string, error)
	// UpdateUser stages the allow-listed fields present in input and applies
	// them as a partial update.
	UpdateUser(ctx context.Context, actor Actor, targetID string, input UpdateUserInput) error
	// DeleteUser removes the target record after the permission check.
	DeleteUser(ctx context.Context, actor Actor, targetID string) error
}
