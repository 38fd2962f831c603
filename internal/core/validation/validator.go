// Package validation holds the field-format rules that gate every user
// mutation. The format checks are pure predicates — malformed input is just
// "invalid", never an error. The uniqueness checks read from the user store
// and live on Validator so the store handle is an explicit dependency.
package validation

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/smartadmin/user-api/internal/core/domain"
)

var (
	documentPattern = regexp.MustCompile(`^[0-9]{6,15}$`)
	namePattern     = regexp.MustCompile(`^[A-Za-z]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{7,15}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(\.[a-zA-Z]{2,})*$`)
)

const passwordSymbols = "@$!%*?&"

// ValidDocument reports whether v is a 6–15 digit document number.
func ValidDocument(v string) bool {
	return documentPattern.MatchString(v)
}

// ValidDocumentType reports whether v is a member of the fixed type set.
func ValidDocumentType(v string) bool {
	return domain.DocumentType(v).Valid()
}

// ValidRole reports whether v is one of the three defined roles.
func ValidRole(v string) bool {
	return domain.Role(v).Valid()
}

// ValidName reports whether v is alphabetic only — no spaces, no diacritics,
// no digits.
func ValidName(v string) bool {
	return namePattern.MatchString(v)
}

// ValidLastName applies the same rule as ValidName.
func ValidLastName(v string) bool {
	return namePattern.MatchString(v)
}

// ValidEmail reports whether v has a local@domain.tld shape with at least
// one dot after the @.
func ValidEmail(v string) bool {
	return emailPattern.MatchString(v)
}

// ValidPhone reports whether v is a 7–15 digit numeric string.
func ValidPhone(v string) bool {
	return phonePattern.MatchString(v)
}

// ValidPassword requires length >= 8 with at least one lowercase letter, one
// uppercase letter, one digit, and one symbol from @$!%*?&; no other
// characters are allowed. Scanned per class since RE2 has no lookaheads.
func ValidPassword(v string) bool {
	if len(v) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}

// ValidRePassword reports whether the confirmation matches exactly.
func ValidRePassword(password, rePassword string) bool {
	return password == rePassword
}

// Directory is the read-side the uniqueness checks need from the user store.
type Directory interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Validator bundles the uniqueness lookups against an injected store.
type Validator struct {
	dir Directory
}

func New(dir Directory) *Validator {
	return &Validator{dir: dir}
}

// DocumentRegistered reports whether a user record already exists under the
// given document number.
func (v *Validator) DocumentRegistered(ctx context.Context, document string) (bool, error) {
	_, err := v.dir.FindByID(ctx, document)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EmailRegistered reports whether any user record already holds the email.
func (v *Validator) EmailRegistered(ctx context.Context, email string) (bool, error) {
	_, err := v.dir.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
