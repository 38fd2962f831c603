package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smartadmin/user-api/internal/core/credentials"
	"github.com/smartadmin/user-api/internal/core/domain"
	"github.com/smartadmin/user-api/internal/core/ports"
	"github.com/smartadmin/user-api/internal/core/validation"
)

// UserService is the directory service: it orchestrates the validator, the
// permission tables, and the credential hasher against the user store.
type UserService struct {
	repo      ports.UserRepository
	validator *validation.Validator
	hasher    *credentials.Hasher
	logger    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, validator *validation.Validator, hasher *credentials.Hasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, validator: validator, hasher: hasher, logger: logger}
}

// GetUsers returns all users whose role is visible to actorRole, password
// hashes stripped. A store failure yields an empty list and a log entry, not
// an error — listing is best-effort by contract.
func (s *UserService) GetUsers(ctx context.Context, actorRole domain.Role) ([]*domain.User, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("actor_role", string(actorRole)).Msg("failed to list users")
		return []*domain.User{}, nil
	}

	visible := make([]*domain.User, 0, len(all))
	for _, u := range all {
		if domain.CanView(actorRole, u.Role) {
			visible = append(visible, u.Sanitized())
		}
	}
	return visible, nil
}

// AddUser creates a user record. Checks run in a fixed order — format, then
// uniqueness, then authorization — so a probe cannot learn whether a
// document is taken without first presenting a well-formed payload.
func (s *UserService) AddUser(ctx context.Context, actorRole domain.Role, input ports.NewUserInput) (string, error) {
	formatErrors := map[string]string{}
	if !validation.ValidDocument(input.Document) {
		formatErrors["document"] = "invalid document format"
	}
	if !validation.ValidDocumentType(input.DocumentType) {
		formatErrors["document_type"] = "invalid document type"
	}
	if !validation.ValidRole(input.Role) {
		formatErrors["role"] = "invalid role"
	}
	if !validation.ValidName(input.Name) {
		formatErrors["name"] = "invalid name format"
	}
	if !validation.ValidLastName(input.LastName1) || !validation.ValidLastName(input.LastName2) {
		formatErrors["last_names"] = "invalid last names format"
	}
	if !validation.ValidEmail(input.Email) {
		formatErrors["email"] = "invalid email format"
	}
	if !validation.ValidPhone(input.Phone) {
		formatErrors["phone"] = "invalid phone format"
	}
	if !validation.ValidPassword(input.Password) {
		formatErrors["password"] = "invalid password format"
	}
	if !validation.ValidRePassword(input.Password, input.RePassword) {
		formatErrors["re_password"] = "passwords do not match"
	}
	if len(formatErrors) > 0 {
		return "", &domain.ValidationError{Fields: formatErrors}
	}

	conflicts := map[string]string{}
	if taken, err := s.validator.DocumentRegistered(ctx, input.Document); err != nil {
		return "", fmt.Errorf("add user: document lookup: %w", err)
	} else if taken {
		conflicts["document"] = "document already registered"
	}
	if taken, err := s.validator.EmailRegistered(ctx, input.Email); err != nil {
		return "", fmt.Errorf("add user: email lookup: %w", err)
	} else if taken {
		conflicts["email"] = "email already registered"
	}
	if len(conflicts) > 0 {
		return "", &domain.ConflictError{Fields: conflicts}
	}

	role := domain.Role(input.Role)
	if !domain.CanAssignRole(actorRole, role) || !domain.CanCreateUser(actorRole, role) {
		return "", domain.ErrForbidden
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("add user: %w", err)
	}

	user := &domain.User{
		ID:           input.Document,
		DocumentType: domain.DocumentType(input.DocumentType),
		Role:         role,
		Name:         input.Name,
		LastName1:    input.LastName1,
		LastName2:    input.LastName2,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return "", fmt.Errorf("add user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", string(role)).
		Str("actor_role", string(actorRole)).
		Msg("user created")

	return user.ID, nil
}

// UpdateUser applies a partial update to the target record. Invalid
// allow-listed fields are silently dropped; role and password have hard
// gates instead. Only staged fields are persisted.
func (s *UserService) UpdateUser(ctx context.Context, actor ports.Actor, targetID string, input ports.UpdateUserInput) error {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !domain.CanUpdateUser(actor.Role, target.Role) {
		return domain.ErrForbidden
	}

	staged := map[string]any{}
	if input.Name != nil && validation.ValidName(*input.Name) {
		staged["name"] = *input.Name
	}
	if input.LastName1 != nil && validation.ValidLastName(*input.LastName1) {
		staged["last_name1"] = *input.LastName1
	}
	if input.LastName2 != nil && validation.ValidLastName(*input.LastName2) {
		staged["last_name2"] = *input.LastName2
	}
	if input.Email != nil && validation.ValidEmail(*input.Email) {
		staged["email"] = *input.Email
	}
	if input.Phone != nil && validation.ValidPhone(*input.Phone) {
		staged["phone"] = *input.Phone
	}

	if input.Role != nil {
		// Role changes are master-only, on top of the assignment table.
		if actor.Role != domain.RoleMaster {
			return domain.ErrForbidden
		}
		if !domain.CanAssignRole(actor.Role, domain.Role(*input.Role)) {
			return &domain.ValidationError{Fields: map[string]string{"role": "invalid role"}}
		}
		staged["role"] = *input.Role
	}

	if input.Password != nil {
		if !validation.ValidPassword(*input.Password) {
			return &domain.ValidationError{Fields: map[string]string{"password": "invalid password format"}}
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		staged["password"] = hash
	}

	if len(staged) == 0 {
		return domain.ErrNoValidFields
	}

	if err := s.repo.Update(ctx, targetID, staged); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().
		Str("user_id", targetID).
		Str("actor_id", actor.ID).
		Int("fields", len(staged)).
		Msg("user updated")

	return nil
}

// DeleteUser removes the target record after the permission check.
func (s *UserService) DeleteUser(ctx context.Context, actor ports.Actor, targetID string) error {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !domain.CanDeleteUser(actor.Role, target.Role) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().
		Str("user_id", targetID).
		Str("actor_id", actor.ID).
		Msg("user deleted")

	return nil
}
