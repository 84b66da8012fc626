package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/config"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"
	"churchhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthService(t *testing.T, users *MockUserRepository, branches *MockBranchRepository, allowRoles bool) (*authService, repository.SessionStore) {
	t.Helper()
	sessions := repository.NewMemorySessionStore()
	cfg := &config.Config{
		JWTSecret:          testSecret,
		JWTExpiry:          7 * 24 * time.Hour,
		AllowRoleSelection: allowRoles,
	}
	svc, err := NewAuthService(users, branches, sessions, cfg, testLogger())
	require.NoError(t, err)
	return svc.(*authService), sessions
}

func storedUser(t *testing.T, email, password string, role access.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:       "user-" + strings.Split(email, "@")[0],
		Email:    email,
		Password: hash,
		UserName: "Test",
		Role:     role,
		Status:   models.UserStatusActive,
	}
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)

	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = "user-alice"
		}).
		Return(nil)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    " Alice@X.com ",
		Password: "password123",
		UserName: "Alice",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@x.com", resp.User.Email)
	assert.Equal(t, access.RoleIndividual, resp.User.Role)
	assert.Equal(t, int64(7*24*3600), resp.ExpiresIn)

	created := mockUserRepo.Calls[1].Arguments.Get(1).(*models.User)
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, auth.VerifyPassword(created.Password, "password123"))
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)

	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(&models.User{Email: "alice@x.com"}, nil)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "alice@x.com", Password: "password123", UserName: "A"})

	assert.Nil(t, resp)
	assert.Equal(t, ErrEmailInUse, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateKeyFromStore(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)

	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "alice@x.com", Password: "password123", UserName: "A"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestRegister_RoleSelection(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc, _ := newTestAuthService(t, new(MockUserRepository), new(MockBranchRepository), false)
		_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "a@x.com", Password: "password123", UserName: "A", Role: "admin"})
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _ := newTestAuthService(t, new(MockUserRepository), new(MockBranchRepository), true)
		_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "a@x.com", Password: "password123", UserName: "A", Role: "pastor"})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("legacy branch spelling", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockBranchRepo := new(MockBranchRepository)
		svc, _ := newTestAuthService(t, mockUserRepo, mockBranchRepo, true)
		mockBranchRepo.On("GetByID", mock.Anything, "b1").Return(&models.Branch{ID: "b1"}, nil)
		mockUserRepo.On("FindByEmail", mock.Anything, "c@x.com").Return(nil, gorm.ErrRecordNotFound)
		mockUserRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		branch := "b1"
		resp, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "c@x.com", Password: "password123", UserName: "C", Role: "branch", BranchID: &branch})
		require.NoError(t, err)
		assert.Equal(t, access.RoleBranchCoordinator, resp.User.Role)
		require.NotNil(t, resp.User.BranchID)
		assert.Equal(t, "b1", *resp.User.BranchID)
	})
}

func TestLogin_SuccessCarriesStoredRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)
	user := storedUser(t, "coord@x.com", "password123", access.RoleBranchCoordinator)
	mockUserRepo.On("FindByEmail", mock.Anything, "coord@x.com").Return(user, nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "coord@x.com", Password: "password123"})
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleBranchCoordinator, claims.Role)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "coord@x.com", claims.Email)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)
	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(storedUser(t, "alice@x.com", "password123", access.RoleIndividual), nil)
	mockUserRepo.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)

	_, wrongPassword := svc.Login(context.Background(), dto.LoginRequest{Email: "alice@x.com", Password: "nope-nope"})
	_, unknownEmail := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@x.com", Password: "password123"})

	assert.Equal(t, ErrInvalidCredentials, wrongPassword)
	assert.Equal(t, ErrInvalidCredentials, unknownEmail)
	assert.Equal(t, apperror.PublicMessage(wrongPassword), apperror.PublicMessage(unknownEmail))
}

func TestLogin_SuspendedUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)
	user := storedUser(t, "alice@x.com", "password123", access.RoleIndividual)
	user.Status = models.UserStatusSuspended
	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(user, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	assert.Equal(t, ErrAccountSuspended, err)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)
	user := storedUser(t, "alice@x.com", "password123", access.RoleIndividual)
	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(user, nil)
	mockUserRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)

	principal, err := svc.Verify(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, access.RoleIndividual, principal.Role)

	t.Run("tampered", func(t *testing.T) {
		_, err := svc.Verify(ctx, resp.Token+"x")
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: user.ID, SessionID: principal.SessionID}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(ctx, unsigned)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("after logout", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, principal.SessionID))
		_, err := svc.Verify(ctx, resp.Token)
		assert.Equal(t, ErrInvalidToken, err)
		// logout is idempotent
		assert.NoError(t, svc.Logout(ctx, principal.SessionID))
	})
}

func TestVerify_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)
	user := storedUser(t, "alice@x.com", "password123", access.RoleIndividual)
	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(user, nil)

	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)
	svc.now = time.Now

	_, err = svc.Verify(ctx, resp.Token)
	assert.Equal(t, ErrInvalidToken, err)
	mockUserRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestVerify_UserGone(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(t, mockUserRepo, new(MockBranchRepository), true)
	user := storedUser(t, "alice@x.com", "password123", access.RoleIndividual)
	mockUserRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(user, nil)
	mockUserRepo.On("FindByID", mock.Anything, user.ID).Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, resp.Token)
	assert.Equal(t, ErrInvalidToken, err)
}
