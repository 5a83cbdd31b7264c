package http

import (
	"testing"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/mock"
	"github.com/MKhiriev/go-user-hub/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// testMocks bundles the service doubles behind a test handler.
type testMocks struct {
	auth   *mock.MockAuthService
	user   *mock.MockUserService
	upload *mock.MockUploadService
}

// newTestHandler builds a Handler whose services are gomock doubles.
// The db field stays nil; database health probing has its own test.
func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, testMocks) {
	t.Helper()

	mocks := testMocks{
		auth:   mock.NewMockAuthService(ctrl),
		user:   mock.NewMockUserService(ctrl),
		upload: mock.NewMockUploadService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:   mocks.auth,
		UserService:   mocks.user,
		UploadService: mocks.upload,
	}, nil, logger.Nop())

	return h, mocks
}

func TestNewHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	assert.NotNil(t, h)
	assert.NotNil(t, h.Init())
}
