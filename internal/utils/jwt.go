package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-hub/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenDuration is applied when a token is requested without an
// explicit time-to-live.
const DefaultTokenDuration = 15 * time.Minute

// signingMethod resolves a configured algorithm name to its HMAC signing
// method. An empty name selects HS256; non-HMAC algorithms are rejected
// because tokens are signed with a shared secret.
func signingMethod(algorithm string) (*jwt.SigningMethodHMAC, error) {
	if algorithm == "" {
		return jwt.SigningMethodHS256, nil
	}

	hmacMethod, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token signing algorithm %q", algorithm)
	}

	return hmacMethod, nil
}

// GenerateJWTToken creates a signed HMAC JWT access token.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the username of the principal
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// A zero tokenDuration falls back to [DefaultTokenDuration].
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	username      - login of the user the token is issued for
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token
//	algorithm     - HMAC algorithm name ("HS256", "HS384", "HS512");
//	                empty selects HS256
//
// Returns the token model (signed string plus the jwt.Token object) or an
// error if the parameters are invalid or signing fails.
func GenerateJWTToken(issuer, username string, tokenDuration time.Duration, signKey, algorithm string) (models.Token, error) {
	if issuer == "" || username == "" || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}
	if tokenDuration == 0 {
		tokenDuration = DefaultTokenDuration
	}

	method, err := signingMethod(algorithm)
	if err != nil {
		return models.Token{}, err
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(method, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, Subject: username}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Signing algorithm check: only the configured HMAC algorithm is accepted
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Returns the parsed token model with its Subject populated, or an error if
// validation fails for any reason (bad signature, wrong algorithm, expired,
// malformed, missing subject).
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer, algorithm string) (models.Token, error) {
	method, err := signingMethod(algorithm)
	if err != nil {
		return models.Token{}, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{method.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, Subject: subject}, nil
}

// ParseBearerToken extracts the token string from a raw "Authorization"
// header value of the form "Bearer <token>". The scheme word is matched
// case-insensitively; any other scheme is rejected.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
