package auth

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/repositories"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// BootstrapAdminID is the fixed primary key of the reserved administrator
// record, so repeated bootstraps never race into duplicates.
const BootstrapAdminID = "admin-root-user"

// MinPasswordLen is the minimum accepted signup password length.
const MinPasswordLen = 6

// Gateway is a thin authentication layer over the users repository.
type Gateway struct {
	users    *repositories.UserRepository
	verifier Verifier
	admin    shared.AdminConfig
	logger   *log.Logger
}

// NewGateway creates a Gateway. A nil verifier defaults to
// [PlainVerifier]; a nil logger defaults to stderr.
func NewGateway(users *repositories.UserRepository, admin shared.AdminConfig, verifier Verifier, logger *log.Logger) *Gateway {
	if verifier == nil {
		verifier = PlainVerifier{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Gateway{users: users, verifier: verifier, admin: admin, logger: logger}
}

// Signup registers a new account with the user role. Fails with
// [shared.ErrEmailTaken] when the email is already registered.
//
// An account created here with the reserved admin email is elevated the
// next time EnsureAdminUser runs; signup itself never rejects it.
func (g *Gateway) Signup(email, name, password string) (*models.User, error) {
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", shared.ErrInvalidInput, MinPasswordLen)
	}

	stored, err := g.verifier.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credentials: %w", err)
	}

	user := models.NewUser(email, name, stored, models.RoleUser)
	if err := g.users.Create(user); err != nil {
		return nil, err
	}

	g.logger.Info("user registered", "email", user.Email())
	return user, nil
}

// Login looks up the account by email and, when a password is supplied,
// checks it against the stored credential. An empty password skips the
// check; callers restoring a session by id use [repositories.UserRepository.Get]
// instead.
func (g *Gateway) Login(email, password string) (*models.User, error) {
	user, err := g.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if password != "" {
		ok, err := g.verifier.Verify(password, user.Password())
		if err != nil {
			return nil, fmt.Errorf("failed to verify credentials: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrWrongPassword, email)
		}
	}

	return user, nil
}

// EnsureAdminUser idempotently guarantees exactly one account at the
// reserved admin email. A missing account is created with the bootstrap
// credential; an existing account under a different role is promoted to
// admin rather than rejected.
func (g *Gateway) EnsureAdminUser() error {
	existing, err := g.users.GetByEmail(g.admin.Email)
	if err == nil {
		if existing.IsAdmin() {
			return nil
		}
		existing.SetRole(models.RoleAdmin)
		if err := g.users.Put(existing); err != nil {
			return fmt.Errorf("failed to promote admin account: %w", err)
		}
		g.logger.Warn("promoted existing account to admin", "email", g.admin.Email)
		return nil
	}
	if !errors.Is(err, shared.ErrUserNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	stored, err := g.verifier.Hash(g.admin.Password)
	if err != nil {
		return fmt.Errorf("failed to prepare bootstrap credentials: %w", err)
	}

	admin := models.NewUser(g.admin.Email, g.admin.Name, stored, models.RoleAdmin)
	admin.SetID(BootstrapAdminID)
	if err := g.users.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	g.logger.Info("created bootstrap admin account", "email", g.admin.Email)
	return nil
}
