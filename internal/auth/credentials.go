package auth

import (
	"context"
	"errors"
	"fmt"

	"quizapp/internal/database"
	"quizapp/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username, password, or user type")
)

// CredentialStore owns user records: it hashes passwords on the way in and
// checks them on the way out. Plaintext passwords never reach the repository.
type CredentialStore struct {
	users     database.UserRepository
	cost      int
	dummyHash []byte
}

// NewCredentialStore uses bcrypt.DefaultCost when cost is 0.
func NewCredentialStore(users database.UserRepository, cost int) (*CredentialStore, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	// compared against when the username is unknown, so a miss costs as much as a wrong password
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return &CredentialStore{users: users, cost: cost, dummyHash: dummy}, nil
}

func (s *CredentialStore) CreateUser(ctx context.Context, username, password string, role models.UserRole) (string, error) {
	_, err := s.users.FindUserByUsername(ctx, username)
	switch {
	case err == nil:
		return "", ErrDuplicateUsername
	case !errors.Is(err, database.ErrNotFound):
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}

	id, err := s.users.InsertUser(ctx, &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if errors.Is(err, database.ErrDuplicateKey) {
		// lost a race with a concurrent signup
		return "", ErrDuplicateUsername
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *CredentialStore) FindUser(ctx context.Context, username string) (*models.User, error) {
	u, err := s.users.FindUserByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// VerifyPassword reports whether password hashes to u's stored hash.
// bcrypt compares the digests in constant time.
func (s *CredentialStore) VerifyPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Authenticate looks the user up and checks both the password and the role.
// Unknown user, wrong password and wrong role all return
// ErrInvalidCredentials; only store failures come back as other errors.
func (s *CredentialStore) Authenticate(ctx context.Context, username, password string, role models.UserRole) (*models.User, error) {
	u, err := s.FindUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.VerifyPassword(u, password) || u.Role != role {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
