package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map them to HTTP
// statuses with [errors.Is]; see the errors_mapper in the http package.
var (
	// ErrInvalidDataProvided is returned when required request fields are
	// missing or malformed.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned when credential verification fails.
	ErrWrongPassword = errors.New("wrong password")

	// ErrInvalidToken is returned when a bearer token fails verification
	// for any reason: bad signature, wrong algorithm, expired, malformed.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrUnauthorized is returned when the principal behind a token cannot
	// be resolved. Deliberately indistinguishable from ErrInvalidToken at
	// the HTTP boundary so account existence is not leaked.
	ErrUnauthorized = errors.New("could not validate credentials")

	// ErrInactiveUser is returned by the active-account gate when the
	// resolved principal is disabled.
	ErrInactiveUser = errors.New("inactive user")

	// ErrForbidden is returned when an authenticated principal lacks the
	// privilege for the requested mutation.
	ErrForbidden = errors.New("not enough permissions")

	// ErrTokenCreationFailed is returned when signing a new access token
	// fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrFileValidation is returned when an uploaded file fails the
	// name/type/size checks. The wrapped message carries the reason.
	ErrFileValidation = errors.New("file validation failed")

	// ErrUpstreamFailure is returned when an external collaborator
	// (object storage, database) fails in a way the caller cannot fix.
	ErrUpstreamFailure = errors.New("upstream failure")
)
