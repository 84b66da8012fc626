package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/config"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"
	"churchhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims is the signed token payload. The session id ties it to a server-side session.
type Claims struct {
	UserID    string      `json:"id"`
	Email     string      `json:"email"`
	Role      access.Role `json:"role"`
	SessionID string      `json:"sid"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	// Verify resolves a bearer token to the caller; it fails when the signature is
	// invalid, the token expired, the session ended or the user is gone.
	Verify(ctx context.Context, token string) (*access.Principal, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID string) (*dto.UserView, error)
}

type authService struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	sessions   repository.SessionStore
	secret     []byte
	expiry     time.Duration
	allowRoles bool
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison
	dummyHash string
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, branchRepo repository.BranchRepository, sessions repository.SessionStore, cfg *config.Config, logger *slog.Logger) (AuthService, error) {
	dummy, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}
	return &authService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		sessions:   sessions,
		secret:     []byte(cfg.JWTSecret),
		expiry:     cfg.JWTExpiry,
		allowRoles: cfg.AllowRoleSelection,
		dummyHash:  dummy,
		logger:     logger,
		now:        time.Now,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	role := access.RoleIndividual
	if req.Role != "" {
		parsed, err := access.ParseRole(req.Role)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindValidation, "invalid role", err)
		}
		role = parsed
	}
	if role != access.RoleIndividual && !s.allowRoles {
		return nil, apperror.Forbidden("Only individual accounts can be self-registered")
	}

	var branchID *string
	if req.BranchID != nil && *req.BranchID != "" {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Validation("Unknown branch")
			}
			return nil, apperror.Internal("failed to load branch", err)
		}
		branchID = req.BranchID
	}

	// Check if email already exists
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal("failed to look up user", err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		UserName: strings.TrimSpace(req.UserName),
		Role:     role,
		BranchID: branchID,
		Status:   models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration can slip past the lookup above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(ctx, user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Internal("failed to look up user", err)
		}
		_ = auth.VerifyPassword(s.dummyHash, req.Password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, ErrAccountSuspended
	}

	return s.issue(ctx, user)
}

// issue opens a session and signs a token bound to it.
func (s *authService) issue(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.expiry),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperror.Internal("failed to store session", err)
	}

	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperror.Internal("failed to sign token", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.expiry / time.Second),
		User:      dto.FromModelToUserView(user),
	}, nil
}

func (s *authService) Verify(ctx context.Context, tokenString string) (*access.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, apperror.Internal("failed to load session", err)
	}
	if session.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, apperror.Internal("failed to load user", err)
	}
	if user.Status == models.UserStatusSuspended {
		return nil, ErrAccountSuspended
	}

	// role and branch come from the stored user so admin reassignments apply immediately
	return &access.Principal{
		UserID:    user.ID,
		Email:     user.Email,
		UserName:  user.UserName,
		Role:      user.Role,
		BranchID:  user.BranchID,
		SessionID: session.ID,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperror.Internal("failed to end session", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	view := dto.FromModelToUserView(user)
	return &view, nil
}
