package auth

import (
	"errors"
	"testing"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
	tu "github.com/rcavaliericopy-max/salomao/internal/testing"
)

var testAdmin = shared.AdminConfig{
	Email:    "admin@salomao.local",
	Name:     "Administrator",
	Password: "changeme",
}

func TestSignup(t *testing.T) {
	t.Run("CreatesUserRole", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		user, err := gateway.Signup("new@example.com", "New User", "secret1")
		if err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}
		if user.Role() != models.RoleUser {
			t.Errorf("expected user role, got %s", user.Role())
		}
		if user.ID() == "" {
			t.Error("expected generated ID")
		}
	})

	t.Run("RejectsShortPassword", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		_, err := gateway.Signup("new@example.com", "New User", "short")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("RejectsDuplicateEmail", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		if _, err := gateway.Signup("dup@example.com", "First", "secret1"); err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}

		_, err := gateway.Signup("dup@example.com", "Second", "secret2")
		if !errors.Is(err, shared.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}

		kept, err := store.Users().GetByEmail("dup@example.com")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if kept.Name() != "First" {
			t.Errorf("existing account should be unmodified, got name %q", kept.Name())
		}
	})

	t.Run("AllowsReservedAdminEmail", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		user, err := gateway.Signup(testAdmin.Email, "Squatter", "secret1")
		if err != nil {
			t.Fatalf("signup with the reserved email should succeed: %v", err)
		}
		if user.IsAdmin() {
			t.Error("signup should never grant the admin role")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		if _, err := gateway.Signup("login@example.com", "Login", "secret1"); err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}

		user, err := gateway.Login("login@example.com", "secret1")
		if err != nil {
			t.Fatalf("failed to log in: %v", err)
		}
		if user.Email() != "login@example.com" {
			t.Errorf("unexpected user %s", user.Email())
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		if _, err := gateway.Signup("login@example.com", "Login", "secret1"); err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}

		_, err := gateway.Login("login@example.com", "wrong-password")
		if !errors.Is(err, shared.ErrWrongPassword) {
			t.Errorf("expected ErrWrongPassword, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		_, err := gateway.Login("nobody@example.com", "secret1")
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("EmptyPasswordSkipsCheck", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		if _, err := gateway.Signup("login@example.com", "Login", "secret1"); err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}

		user, err := gateway.Login("login@example.com", "")
		if err != nil {
			t.Fatalf("expected passwordless lookup to succeed: %v", err)
		}
		if user.Email() != "login@example.com" {
			t.Errorf("unexpected user %s", user.Email())
		}
	})
}

func TestEnsureAdminUser(t *testing.T) {
	t.Run("CreatesBootstrapAccount", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		if err := gateway.EnsureAdminUser(); err != nil {
			t.Fatalf("failed to ensure admin: %v", err)
		}

		admin, err := store.Users().GetByEmail(testAdmin.Email)
		if err != nil {
			t.Fatalf("failed to get admin: %v", err)
		}
		if admin.ID() != BootstrapAdminID {
			t.Errorf("expected bootstrap ID %s, got %s", BootstrapAdminID, admin.ID())
		}
		if !admin.IsAdmin() {
			t.Error("expected admin role")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		if err := gateway.EnsureAdminUser(); err != nil {
			t.Fatalf("failed to ensure admin: %v", err)
		}
		if err := gateway.EnsureAdminUser(); err != nil {
			t.Fatalf("second ensure failed: %v", err)
		}

		users, err := store.Users().List()
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 1 {
			t.Errorf("expected exactly one account, got %d", len(users))
		}
	})

	t.Run("PromotesExistingAccount", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		gateway := NewGateway(store.Users(), testAdmin, nil, nil)

		squatter, err := gateway.Signup(testAdmin.Email, "Squatter", "their-own-password")
		if err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}

		if err := gateway.EnsureAdminUser(); err != nil {
			t.Fatalf("failed to ensure admin: %v", err)
		}

		promoted, err := store.Users().Get(squatter.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if !promoted.IsAdmin() {
			t.Error("expected existing account to be promoted")
		}
		if promoted.Password() != "their-own-password" {
			t.Error("promotion should not replace the stored credential")
		}
	})
}
