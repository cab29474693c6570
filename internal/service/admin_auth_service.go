package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/models"
	"github.com/appdotbuilder/canossa-info-system/internal/observability"
	"github.com/appdotbuilder/canossa-info-system/internal/repository"
)

// PasswordHasher hashes and verifies administrator passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// TokenIssuer mints session tokens for authenticated administrators.
type TokenIssuer interface {
	Issue(adminID uint, username string, issuedAt time.Time) (string, time.Time, error)
}

// AdminAuthService authenticates and provisions administrators.
type AdminAuthService interface {
	Login(ctx context.Context, payload dto.AdminLoginRequest) (dto.AdminLoginResponse, error)
	CreateAdministrator(ctx context.Context, payload dto.AdministratorCreateRequest, actor Actor) (dto.AdministratorResponse, error)
}

type adminAuthService struct {
	repo      repository.AdministratorRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAdminAuthService constructs the authentication service.
func NewAdminAuthService(repo repository.AdministratorRepository, hasher PasswordHasher, tokens TokenIssuer, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminAuthService {
	return &adminAuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_auth_service").Logger(),
		tracer:    otel.Tracer("github.com/appdotbuilder/canossa-info-system/internal/service/auth"),
		now:       clock,
	}
}

// Login verifies credentials. Unknown usernames, inactive accounts and wrong
// passwords all yield the same unsuccessful result rather than an error.
func (s *adminAuthService) Login(ctx context.Context, payload dto.AdminLoginRequest) (dto.AdminLoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "admin.login")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return dto.AdminLoginResponse{}, err
	}

	admin, err := s.repo.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.reject(span, "unknown_user"), nil
		}
		s.fail(span, err)
		return dto.AdminLoginResponse{}, fmt.Errorf("lookup administrator: %w", err)
	}
	span.SetAttributes(attribute.Int("admin.id", int(admin.ID)))

	if !admin.IsActive {
		return s.reject(span, "inactive"), nil
	}
	if !s.hasher.Verify(admin.PasswordHash, payload.Password) {
		return s.reject(span, "invalid_password"), nil
	}

	now := s.now()
	token, expiresAt, err := s.tokens.Issue(admin.ID, admin.Username, now)
	if err != nil {
		s.fail(span, err)
		return dto.AdminLoginResponse{}, fmt.Errorf("issue token: %w", err)
	}

	if err := s.repo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		s.fail(span, err)
		return dto.AdminLoginResponse{}, fmt.Errorf("record last login: %w", err)
	}

	observability.AdminLogins().WithLabelValues("success").Inc()
	span.SetStatus(codes.Ok, "authenticated")
	s.logger.Info().Uint("admin_id", admin.ID).Msg("administrator logged in")

	return dto.AdminLoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: &expiresAt,
	}, nil
}

func (s *adminAuthService) reject(span trace.Span, reason string) dto.AdminLoginResponse {
	observability.AdminLogins().WithLabelValues("rejected").Inc()
	span.SetAttributes(attribute.String("login.rejection", reason))
	span.SetStatus(codes.Error, "rejected")
	s.logger.Info().Str("reason", reason).Msg("administrator login rejected")
	return dto.AdminLoginResponse{Success: false}
}

func (s *adminAuthService) fail(span trace.Span, err error) {
	observability.AdminLogins().WithLabelValues("error").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "login failed")
}

func (s *adminAuthService) CreateAdministrator(ctx context.Context, payload dto.AdministratorCreateRequest, actor Actor) (dto.AdministratorResponse, error) {
	payload.Username = strings.TrimSpace(payload.Username)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	payload.FullName = strings.TrimSpace(payload.FullName)
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdministratorResponse{}, err
	}

	hash, err := s.hasher.Hash(payload.Password)
	if err != nil {
		return dto.AdministratorResponse{}, err
	}

	admin := models.Administrator{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: hash,
		FullName:     payload.FullName,
		IsActive:     boolOrDefault(payload.IsActive, true),
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, &admin); err != nil {
		return dto.AdministratorResponse{}, fmt.Errorf("create administrator %q: %w", admin.Username, err)
	}

	observability.ContentMutations().WithLabelValues("administrator", "created").Inc()
	entityID := admin.ID
	recordAudit(ctx, s.audit, s.logger, AuditEntry{
		Actor:      actor,
		Action:     "administrator.created",
		EntityType: "administrator",
		EntityID:   &entityID,
		Metadata: map[string]interface{}{
			"username":  admin.Username,
			"email":     admin.Email,
			"is_active": admin.IsActive,
		},
	})

	return dto.NewAdministratorResponse(admin), nil
}
