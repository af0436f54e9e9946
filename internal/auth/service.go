package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/taskdash/taskdash/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16

	initialPasswordBytes = 12
)

// Service provides login, token refresh and credential issuance. There is no
// self-service registration: accounts are created by admins through the user
// management operations, which obtain the initial password from here.
type Service struct {
	userRepo   domain.UserRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(userRepo domain.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login validates email/password and returns the user record plus access and
// refresh tokens. The token claims carry the caller descriptor (id + role)
// every core operation authorizes against.
func (s *Service) Login(ctx context.Context, email, password string) (user *domain.User, accessToken, refreshToken string, err error) {
	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	accessToken, err = IssueAccessToken(s.jwtSecret, user.ID, user.Role, s.accessTTL)
	if err != nil {
		return nil, "", "", fmt.Errorf("auth.Login: %w", err)
	}

	refreshToken, err = IssueRefreshToken(s.jwtSecret, user.ID, user.Role, s.refreshTTL)
	if err != nil {
		return nil, "", "", fmt.Errorf("auth.Login: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

// Refresh validates a refresh token and issues a new access token carrying
// the user's current role, re-read from the store.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ValidateToken(s.jwtSecret, refreshToken)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("auth.Refresh: %w", ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	newAccess, err := IssueAccessToken(s.jwtSecret, user.ID, user.Role, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	return newAccess, nil
}

// IssueInitialPassword generates a random one-time password and its argon2id
// hash. The plaintext is handed to the creating admin exactly once and is
// never stored.
func (s *Service) IssueInitialPassword() (plaintext, hash string, err error) {
	buf := make([]byte, initialPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("auth.IssueInitialPassword: %w", err)
	}
	plaintext = hex.EncodeToString(buf)

	hash, err = hashPassword(plaintext)
	if err != nil {
		return "", "", fmt.Errorf("auth.IssueInitialPassword: %w", err)
	}

	return plaintext, hash, nil
}

// hashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	var saltHex, hashHex string
	for i := range len(encoded) {
		if encoded[i] == '$' {
			saltHex = encoded[:i]
			hashHex = encoded[i+1:]
			break
		}
	}

	if saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expectedHash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	// Constant-time comparison to prevent timing attacks.
	if len(computed) != len(expectedHash) {
		return false
	}

	var diff byte
	for i := range computed {
		diff |= computed[i] ^ expectedHash[i]
	}

	return diff == 0
}
