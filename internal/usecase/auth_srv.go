package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/internal/dto/response"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ListUniversities(ctx context.Context) ([]response.UniversityResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := entity.UserRole(req.Role)

	var universityID *uuid.UUID
	if role == entity.RoleStudent {
		// Students must belong to a university and carry a student number.
		if req.StudentNumber == nil || req.UniversityID == nil {
			return nil, fmt.Errorf("%w: student_number and university_id are required for students", ErrValidation)
		}

		id, err := uuid.Parse(*req.UniversityID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid university ID %s", ErrValidation, *req.UniversityID)
		}

		university, err := s.repo.University.FindByID(ctx, id)
		if err != nil {
			return nil, storeErr(err)
		}
		if university == nil || !university.Active {
			return nil, fmt.Errorf("university %s: %w", *req.UniversityID, ErrNotFound)
		}

		if !strings.HasSuffix(email, "@"+strings.ToLower(university.EmailDomain)) {
			return nil, fmt.Errorf("%w: email must belong to the %s domain", ErrValidation, university.EmailDomain)
		}

		universityID = &id
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, fmt.Errorf("register %s: %w", email, ErrEmailTaken)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:         email,
		FullName:      req.FullName,
		PasswordHash:  hash,
		Phone:         req.Phone,
		Role:          role,
		StudentNumber: req.StudentNumber,
		UniversityID:  universityID,
		IsActive:      true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, storeErr(err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &response.AuthResponse{User: response.UserToResponse(user)}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("login %s: %w", email, ErrInvalidCredentials)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed: wrong password", zap.String("email", email))
		return nil, fmt.Errorf("login %s: %w", email, ErrInvalidCredentials)
	}

	session, err := s.createSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &response.AuthResponse{
		User:      response.UserToResponse(user),
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return storeErr(err)
	}
	return nil
}

func (s *authService) ListUniversities(ctx context.Context) ([]response.UniversityResponse, error) {
	universities, err := s.repo.University.FindAllActive(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	resp := make([]response.UniversityResponse, len(universities))
	for i, university := range universities {
		resp[i] = response.UniversityToResponse(university)
	}

	return resp, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, userAgent, ipAddress string) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, storeErr(err)
	}

	return session, nil
}
