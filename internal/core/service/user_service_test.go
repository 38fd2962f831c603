package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartadmin/user-api/internal/core/credentials"
	"github.com/smartadmin/user-api/internal/core/domain"
	"github.com/smartadmin/user-api/internal/core/ports"
	"github.com/smartadmin/user-api/internal/core/validation"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users      map[string]*domain.User
	lastUpdate map[string]any // fields passed to the last Update call
	findAllErr error
}

func newStubUserRepo(seed ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range seed {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.ID]; exists {
		return &domain.ConflictError{Fields: map[string]string{"document": "document already registered"}}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, fields map[string]any) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.lastUpdate = fields
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "name":
			u.Name = s
		case "last_name1":
			u.LastName1 = s
		case "last_name2":
			u.LastName2 = s
		case "email":
			u.Email = s
		case "phone":
			u.Phone = s
		case "role":
			u.Role = domain.Role(s)
		case "password":
			u.PasswordHash = s
		}
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------

var testHasher = credentials.NewHasher(credentials.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 16, SaltLen: 8})

func newUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, validation.New(repo), testHasher, zerolog.Nop())
}

func validInput() ports.NewUserInput {
	return ports.NewUserInput{
		Document:     "1032456789",
		DocumentType: "CC",
		Role:         "user",
		Name:         "Maria",
		LastName1:    "Gomez",
		LastName2:    "Lopez",
		Email:        "maria@mail.co",
		Phone:        "3001234567",
		Password:     "Hola123@",
		RePassword:   "Hola123@",
	}
}

func strptr(s string) *string { return &s }

func TestAddUser_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	id, err := svc.AddUser(context.Background(), domain.RoleAdmin, validInput())
	if err != nil {
		t.Fatalf("AddUser returned error: %v", err)
	}
	if id != "1032456789" {
		t.Fatalf("id = %q, want the document number", id)
	}

	stored := repo.users[id]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "Hola123@" || stored.PasswordHash == "" {
		t.Fatalf("password was not hashed: %q", stored.PasswordHash)
	}
	if !testHasher.Verify(stored.PasswordHash, "Hola123@") {
		t.Fatalf("stored hash does not verify against the password")
	}
}

func TestAddUser_AggregatesFormatErrors(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	input := validInput()
	input.Document = "123"       // too short
	input.Email = "nope@com"     // no dot after @
	input.Password = "hola123"   // misses several classes
	input.RePassword = "Hola123" // mismatch on top

	_, err := svc.AddUser(context.Background(), domain.RoleAdmin, input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"document", "email", "password", "re_password"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Errorf("expected field %q in aggregated errors, got %v", field, ve.Fields)
		}
	}
	if len(repo.users) != 0 {
		t.Fatalf("nothing should be persisted on a format failure")
	}
}

func TestAddUser_Conflicts(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: "1032456789", Email: "other@mail.co", Role: domain.RoleUser},
		&domain.User{ID: "222222", Email: "maria@mail.co", Role: domain.RoleUser},
	)
	svc := newUserService(repo)

	_, err := svc.AddUser(context.Background(), domain.RoleAdmin, validInput())
	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if _, ok := ce.Fields["document"]; !ok {
		t.Errorf("expected document conflict, got %v", ce.Fields)
	}
	if _, ok := ce.Fields["email"]; !ok {
		t.Errorf("expected email conflict, got %v", ce.Fields)
	}
}

// An admin posting role=admin is forbidden no matter how valid the payload is.
func TestAddUser_AdminCannotCreateAdmin(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	input := validInput()
	input.Role = "admin"

	if _, err := svc.AddUser(context.Background(), domain.RoleAdmin, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAddUser_NoOneCreatesMaster(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	input := validInput()
	input.Role = "master"

	for _, actor := range []domain.Role{domain.RoleMaster, domain.RoleAdmin, domain.RoleUser} {
		if _, err := svc.AddUser(context.Background(), actor, input); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("actor %s creating a master: got %v, want ErrForbidden", actor, err)
		}
	}
}

// Format problems must surface before authorization: an unauthorized probe
// with a malformed payload sees 400, not 403.
func TestAddUser_FormatBeforeAuthorization(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	input := validInput()
	input.Role = "admin"  // would be forbidden for an admin actor
	input.Document = "12" // but the format error wins

	_, err := svc.AddUser(context.Background(), domain.RoleAdmin, input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError first, got %v", err)
	}
}

func TestGetUsers_Visibility(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: "111111", Role: domain.RoleUser, PasswordHash: "h1"},
		&domain.User{ID: "222222", Role: domain.RoleAdmin, PasswordHash: "h2"},
		&domain.User{ID: "333333", Role: domain.RoleMaster, PasswordHash: "h3"},
	)
	svc := newUserService(repo)

	users, err := svc.GetUsers(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 || users[0].ID != "111111" {
		t.Fatalf("admin should see exactly the one user record, got %+v", users)
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("password hash must be stripped from listings")
	}

	users, err = svc.GetUsers(context.Background(), domain.RoleMaster)
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 || users[0].ID != "222222" {
		t.Fatalf("master should see exactly the one admin record, got %+v", users)
	}

	users, _ = svc.GetUsers(context.Background(), domain.RoleUser)
	if len(users) != 0 {
		t.Fatalf("user role should see nobody, got %+v", users)
	}
}

func TestGetUsers_StoreFailureYieldsEmptyList(t *testing.T) {
	repo := newStubUserRepo()
	repo.findAllErr = errors.New("connection reset")
	svc := newUserService(repo)

	users, err := svc.GetUsers(context.Background(), domain.RoleMaster)
	if err != nil {
		t.Fatalf("GetUsers should swallow store failures, got %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %+v", users)
	}
}

func TestUpdateUser_PartialUpdateDropsInvalidFields(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "111111", Role: domain.RoleUser, Name: "Old", Phone: "1234567"})
	svc := newUserService(repo)
	actor := ports.Actor{ID: "999999", Role: domain.RoleAdmin}

	err := svc.UpdateUser(context.Background(), actor, "111111", ports.UpdateUserInput{
		Name:  strptr("Nueva"),
		Phone: strptr("12ab"), // invalid: silently dropped
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if _, staged := repo.lastUpdate["phone"]; staged {
		t.Fatalf("invalid phone should have been dropped, staged %v", repo.lastUpdate)
	}
	if repo.users["111111"].Name != "Nueva" {
		t.Fatalf("name not updated: %+v", repo.users["111111"])
	}
	if repo.users["111111"].Phone != "1234567" {
		t.Fatalf("phone should be untouched: %+v", repo.users["111111"])
	}
}

func TestUpdateUser_NoValidFields(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "111111", Role: domain.RoleUser})
	svc := newUserService(repo)
	actor := ports.Actor{ID: "999999", Role: domain.RoleAdmin}

	err := svc.UpdateUser(context.Background(), actor, "111111", ports.UpdateUserInput{
		Name: strptr("not a name"),
	})
	if !errors.Is(err, domain.ErrNoValidFields) {
		t.Fatalf("expected ErrNoValidFields, got %v", err)
	}
}

func TestUpdateUser_TargetNotFound(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	actor := ports.Actor{ID: "999999", Role: domain.RoleMaster}

	err := svc.UpdateUser(context.Background(), actor, "404404", ports.UpdateUserInput{Name: strptr("Ana")})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUser_ForbiddenTarget(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "222222", Role: domain.RoleAdmin})
	svc := newUserService(repo)
	actor := ports.Actor{ID: "999999", Role: domain.RoleAdmin}

	err := svc.UpdateUser(context.Background(), actor, "222222", ports.UpdateUserInput{Name: strptr("Ana")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin updating an admin: expected ErrForbidden, got %v", err)
	}
}

func TestUpdateUser_RoleChangeIsMasterOnly(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "111111", Role: domain.RoleUser})
	svc := newUserService(repo)

	err := svc.UpdateUser(context.Background(), ports.Actor{ID: "888888", Role: domain.RoleAdmin}, "111111",
		ports.UpdateUserInput{Role: strptr("admin")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin changing a role: expected ErrForbidden, got %v", err)
	}

	err = svc.UpdateUser(context.Background(), ports.Actor{ID: "999999", Role: domain.RoleMaster}, "111111",
		ports.UpdateUserInput{Role: strptr("admin")})
	if err != nil {
		t.Fatalf("master promoting user to admin: %v", err)
	}
	if repo.users["111111"].Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %+v", repo.users["111111"])
	}
}

func TestUpdateUser_MasterCannotAssignUserRole(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "222222", Role: domain.RoleAdmin})
	svc := newUserService(repo)

	// master may assign admin or master, not user — fails the hard gate.
	err := svc.UpdateUser(context.Background(), ports.Actor{ID: "999999", Role: domain.RoleMaster}, "222222",
		ports.UpdateUserInput{Role: strptr("user")})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on a non-assignable role, got %v", err)
	}
}

func TestUpdateUser_PasswordHardGate(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "111111", Role: domain.RoleUser, PasswordHash: "old"})
	svc := newUserService(repo)
	actor := ports.Actor{ID: "999999", Role: domain.RoleAdmin}

	// Invalid password fails the whole call, even alongside a valid field.
	err := svc.UpdateUser(context.Background(), actor, "111111", ports.UpdateUserInput{
		Name:     strptr("Ana"),
		Password: strptr("weak"),
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on a bad password, got %v", err)
	}
	if repo.users["111111"].Name == "Ana" {
		t.Fatalf("no field should persist when the password gate fails")
	}

	// Valid password is hashed before staging.
	if err := svc.UpdateUser(context.Background(), actor, "111111", ports.UpdateUserInput{
		Password: strptr("Nueva123@"),
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	stored := repo.users["111111"].PasswordHash
	if stored == "Nueva123@" || stored == "old" {
		t.Fatalf("password was not hashed and staged: %q", stored)
	}
	if !testHasher.Verify(stored, "Nueva123@") {
		t.Fatalf("staged hash does not verify")
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: "111111", Role: domain.RoleUser},
		&domain.User{ID: "222222", Role: domain.RoleAdmin},
		&domain.User{ID: "333333", Role: domain.RoleMaster},
	)
	svc := newUserService(repo)

	// 404 on a missing target.
	err := svc.DeleteUser(context.Background(), ports.Actor{ID: "9", Role: domain.RoleMaster}, "404404")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// Admin may not delete an admin.
	err = svc.DeleteUser(context.Background(), ports.Actor{ID: "9", Role: domain.RoleAdmin}, "222222")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Master may not delete a master — pinned by the canonical table.
	err = svc.DeleteUser(context.Background(), ports.Actor{ID: "9", Role: domain.RoleMaster}, "333333")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("master deleting a master: expected ErrForbidden, got %v", err)
	}

	// Master deletes an admin.
	if err := svc.DeleteUser(context.Background(), ports.Actor{ID: "9", Role: domain.RoleMaster}, "222222"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, ok := repo.users["222222"]; ok {
		t.Fatalf("record was not deleted")
	}
}
