package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-user-hub/internal/config"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/MKhiriev/go-user-hub/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles credential verification and the JWT token lifecycle using a
// UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to look up accounts.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenAlgorithm is the HMAC algorithm used for signing; tokens signed
	// with any other algorithm are rejected. Empty means HS256.
	tokenAlgorithm string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenAlgorithm: cfg.TokenAlgorithm,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login authenticates an existing account by username and password.
//
// Returns the account record or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrWrongPassword if no such account exists or the bcrypt comparison
//     fails. The two cases are indistinguishable on the wire so account
//     existence is not leaked; the log messages differ.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, ErrWrongPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.HashedPassword), []byte(password)); err != nil {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey under the configured
// tokenAlgorithm, carries the configured tokenIssuer as the "iss" claim and
// the username as "sub", and expires after tokenDuration.
//
// Returns the token model on success or ErrTokenCreationFailed (wrapped) if
// JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Username, a.tokenDuration, a.tokenSignKey, a.tokenAlgorithm)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("username", user.Username).Msg("token creation failed")
		return models.Token{}, errors.Join(ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the signing algorithm, and the issuer claim. Any validation failure
// (expired, wrong issuer, malformed, missing subject) is normalised to
// ErrInvalidToken so that callers do not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.tokenAlgorithm)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token validation failed")
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}

// ResolveCurrentUser maps a raw bearer token to the account it was issued
// for. A bad token and a token whose subject no longer exists both come back
// as ErrUnauthorized; the log messages differ, the wire answer must not.
func (a *authService) ResolveCurrentUser(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		log.Error().Msg("could not decode bearer token")
		return models.User{}, ErrUnauthorized
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, token.Subject)
	if err != nil {
		log.Err(err).Str("username", token.Subject).Msg("token subject does not match any account")
		return models.User{}, ErrUnauthorized
	}

	return foundUser, nil
}

// RequireActive rejects disabled accounts with ErrInactiveUser.
func (a *authService) RequireActive(ctx context.Context, user models.User) error {
	if !user.IsActive {
		logger.FromContext(ctx).Error().
			Int64("id", user.UserID).
			Str("username", user.Username).
			Msg("inactive user rejected")
		return ErrInactiveUser
	}

	return nil
}

// AuthorizeMutation allows a mutation of account targetID when actor is that
// same account or a superuser; everything else is ErrForbidden.
func (a *authService) AuthorizeMutation(ctx context.Context, actor models.User, targetID int64) error {
	if actor.IsSuperuser || actor.UserID == targetID {
		return nil
	}

	logger.FromContext(ctx).Error().
		Int64("actor_id", actor.UserID).
		Int64("target_id", targetID).
		Msg("mutation of foreign account denied")
	return ErrForbidden
}

// HashPassword produces the bcrypt hash stored in place of the plaintext
// password.
func (a *authService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
