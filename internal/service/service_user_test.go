package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/mock"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var errStorage = errors.New("storage error")

func newTestUserService(t *testing.T, repo store.UserRepository) UserService {
	t.Helper()
	auth := newTestAuthService(t, repo)
	return NewUserService(repo, auth, logger.Nop())
}

// ── CreateUser ───────────────────────────────────────────────────────────────

func TestUserService_CreateUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().FindUserByUsername(ctx, "alice").Return(models.User{}, store.ErrNoUserWasFound)
	repo.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(models.User{}, store.ErrNoUserWasFound)
	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.True(t, u.IsActive)
			assert.Equal(t, models.GenderOther, u.Gender)
			assert.NotEqual(t, "secret", u.HashedPassword)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("secret")))
			u.UserID = 42
			return u, nil
		})

	created, err := svc.CreateUser(ctx, models.User{Username: "alice", Email: "alice@example.com"}, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, "alice", created.Username)
}

func TestUserService_CreateUser_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestUserService(t, mock.NewMockUserRepository(ctrl))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, models.User{Email: "a@b.c"}, "secret")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.CreateUser(ctx, models.User{Username: "alice"}, "secret")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.CreateUser(ctx, models.User{Username: "alice", Email: "a@b.c"}, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserService_CreateUser_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().FindUserByUsername(ctx, "alice").Return(models.User{UserID: 1, Username: "alice"}, nil)

	_, err := svc.CreateUser(ctx, models.User{Username: "alice", Email: "new@example.com"}, "secret")
	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestUserService_CreateUser_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().FindUserByUsername(ctx, "bob").Return(models.User{}, store.ErrNoUserWasFound)
	repo.EXPECT().FindUserByEmail(ctx, "taken@example.com").Return(models.User{UserID: 1}, nil)

	_, err := svc.CreateUser(ctx, models.User{Username: "bob", Email: "taken@example.com"}, "secret")
	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestUserService_CreateUser_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().FindUserByUsername(ctx, "bob").Return(models.User{}, errStorage)

	_, err := svc.CreateUser(ctx, models.User{Username: "bob", Email: "b@example.com"}, "secret")
	assert.ErrorIs(t, err, errStorage)
}

// ── Lookups and listing ──────────────────────────────────────────────────────

func TestUserService_GetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, int64(7)).Return(models.User{UserID: 7, Username: "alice"}, nil)

	got, err := svc.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, int64(404)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.GetUser(ctx, 404)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestUserService_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	opts := store.ListOptions{Offset: 0, Limit: 2}
	page := []models.User{{UserID: 1}, {UserID: 2}}

	repo.EXPECT().List(ctx, opts).Return(page, nil)
	repo.EXPECT().Count(ctx, opts).Return(int64(5), nil)

	users, total, err := svc.ListUsers(ctx, opts)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(5), total)
}

// ── UpdateUser ───────────────────────────────────────────────────────────────

func TestUserService_UpdateUser_MapsOnlySetFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	bio := "new bio"
	gender := models.GenderFemale

	repo.EXPECT().Update(ctx, int64(7), map[string]any{
		"bio":    "new bio",
		"gender": "female",
	}).Return(models.User{UserID: 7, Bio: "new bio", Gender: gender}, nil)

	got, err := svc.UpdateUser(ctx, 7, models.UserUpdate{Bio: &bio, Gender: &gender})
	require.NoError(t, err)
	assert.Equal(t, "new bio", got.Bio)
}

func TestUserService_UpdateUser_EmptyUpdateIsLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, int64(7)).Return(models.User{UserID: 7}, nil)

	got, err := svc.UpdateUser(ctx, 7, models.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
}

func TestUserService_UpdateUser_InvalidGender(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestUserService(t, mock.NewMockUserRepository(ctrl))

	bad := models.Gender("attack-helicopter")
	_, err := svc.UpdateUser(context.Background(), 7, models.UserUpdate{Gender: &bad})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Deletion ─────────────────────────────────────────────────────────────────

func TestUserService_DeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, int64(7)).Return(nil)

	assert.NoError(t, svc.DeleteUser(ctx, 7))
}

func TestUserService_DeactivateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := newTestUserService(t, repo)
	ctx := context.Background()

	repo.EXPECT().SoftDelete(ctx, int64(7)).Return(models.User{UserID: 7, IsActive: false}, nil)

	got, err := svc.DeactivateUser(ctx, 7)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
