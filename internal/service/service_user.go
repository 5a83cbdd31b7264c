package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/models"
)

// userService implements UserService on top of the generic CRUD facade,
// adding registration-time validation, password hashing, and the
// username/email lookups the auth flow needs.
type userService struct {
	*CRUD[models.User]

	userRepository store.UserRepository
	authService    AuthService
	logger         *logger.Logger
}

// NewUserService constructs a UserService. The AuthService supplies the
// password hashing used during registration.
func NewUserService(userRepository store.UserRepository, authService AuthService, logger *logger.Logger) UserService {
	return &userService{
		CRUD:           NewCRUD[models.User](userRepository, logger),
		userRepository: userRepository,
		authService:    authService,
		logger:         logger,
	}
}

// CreateUser registers a new account.
//
// It validates the required fields, checks that neither the username nor the
// email is already taken, hashes the plaintext password, and persists the
// account. The pre-insert lookups give friendly errors for the common cases;
// the database unique constraints remain the source of truth under races.
//
// Returns the persisted account or:
//   - ErrInvalidDataProvided if username, email, or password is empty.
//   - store.ErrUserAlreadyExists if the username or email is taken.
func (u *userService) CreateUser(ctx context.Context, user models.User, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Email == "" || password == "" {
		log.Error().Str("username", user.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if user.Gender == "" {
		user.Gender = models.GenderOther
	}

	if _, err := u.userRepository.FindUserByUsername(ctx, user.Username); err == nil {
		log.Error().Str("username", user.Username).Msg("username already taken")
		return models.User{}, store.ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if _, err := u.userRepository.FindUserByEmail(ctx, user.Email); err == nil {
		log.Error().Str("email", user.Email).Msg("email already taken")
		return models.User{}, store.ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := u.authService.HashPassword(password)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user.HashedPassword = hash
	user.IsActive = true

	created, err := u.Create(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	log.Info().Int64("id", created.UserID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// GetUser fetches an account by primary key.
func (u *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	return u.GetByID(ctx, id)
}

// GetUserByUsername fetches an account by its unique username.
func (u *userService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	foundUser, err := u.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	return foundUser, nil
}

// ListUsers returns one page of accounts plus the total count matching the
// filter in opts.
func (u *userService) ListUsers(ctx context.Context, opts store.ListOptions) ([]models.User, int64, error) {
	users, err := u.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := u.Count(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUser applies the non-nil fields of update to the account id and
// returns the updated record. A fully empty update degrades to a lookup.
func (u *userService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	fields := map[string]any{}

	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.FullName != nil {
		fields["full_name"] = *update.FullName
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.Gender != nil {
		if !validGender(*update.Gender) {
			logger.FromContext(ctx).Error().Str("gender", string(*update.Gender)).Msg("invalid gender value")
			return models.User{}, ErrInvalidDataProvided
		}
		fields["gender"] = string(*update.Gender)
	}
	if update.ProfilePicture != nil {
		fields["profile_picture"] = *update.ProfilePicture
	}

	return u.Update(ctx, id, fields)
}

// DeleteUser removes the account id permanently.
func (u *userService) DeleteUser(ctx context.Context, id int64) error {
	return u.CRUD.Delete(ctx, id)
}

// DeactivateUser disables the account id instead of removing it.
func (u *userService) DeactivateUser(ctx context.Context, id int64) (models.User, error) {
	return u.SoftDelete(ctx, id)
}

func validGender(g models.Gender) bool {
	switch g {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return true
	}
	return false
}
