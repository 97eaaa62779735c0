package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/doctor"
	"github.com/clinicbook/clinicbook/internal/domain/patient"
	"github.com/clinicbook/clinicbook/pkg/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account has been suspended")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RecordLogin(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string, mustChange bool) error
	DeleteByPatientID(ctx context.Context, patientID uuid.UUID) error
	DeleteByDoctorID(ctx context.Context, doctorID uuid.UUID) error
}

type AuthService struct {
	userRepo    UserRepository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	jwtManager  *auth.JWTManager
	auditSvc    *AuditService
	log         *zap.Logger
}

func NewAuthService(
	userRepo UserRepository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	jwtManager *auth.JWTManager,
	auditSvc *AuditService,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		jwtManager:  jwtManager,
		auditSvc:    auditSvc,
		log:         log,
	}
}

// RegisterPatient creates a patient record plus its login account.
func (s *AuthService) RegisterPatient(ctx context.Context, cmd *patient.CreatePatientCommand, password string) (*patient.Patient, error) {
	if _, err := s.userRepo.GetByEmail(ctx, cmd.Email); err == nil {
		return nil, ErrEmailRegistered
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	p := &patient.Patient{
		Name:   cmd.Name,
		Email:  cmd.Email,
		Age:    cmd.Age,
		Gender: cmd.Gender,
	}
	if p.Gender == "" {
		p.Gender = patient.GenderUnknown
	}
	if err := s.patientRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		Email:        cmd.Email,
		PasswordHash: string(hash),
		Name:         cmd.Name,
		Role:         domain.RolePatient,
		PatientID:    &p.ID,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.log.Info("patient registered", zap.String("patient_id", p.ID.String()))
	return p, nil
}

// Login authenticates an account and issues a token pair. Blacklisted
// principals are rejected even with valid credentials.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Burn a bcrypt comparison so response time does not reveal
		// whether the email exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt",
			zap.String("email", email),
			zap.String("ip", ip),
		)
		return nil, ErrInvalidCredentials
	}

	if user.Role == domain.RolePatient && user.PatientID != nil {
		p, err := s.patientRepo.GetByID(ctx, *user.PatientID)
		if err != nil {
			return nil, fmt.Errorf("loading patient record: %w", err)
		}
		if p.IsBlacklisted {
			return nil, ErrAccountSuspended
		}
	}

	if user.Role == domain.RoleDoctor && user.DoctorID != nil {
		d, err := s.doctorRepo.GetByID(ctx, *user.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("loading doctor record: %w", err)
		}
		if d.IsBlacklisted {
			return nil, ErrAccountSuspended
		}
	}

	_ = s.userRepo.RecordLogin(ctx, user.ID)

	claims := &domain.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		PatientID: user.PatientID,
		DoctorID:  user.DoctorID,
	}

	pair, err := s.jwtManager.GenerateTokenPair(claims)
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       user.ID,
		UserRole:     string(user.Role),
		Action:       "login",
		ResourceType: "user",
		ResourceID:   user.ID.String(),
		IPAddress:    ip,
	})

	return pair, nil
}

// RefreshToken issues a new access token given a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		PatientID: user.PatientID,
		DoctorID:  user.DoctorID,
	})
}

// ChangePassword updates a user's password after verifying the current
// one, clearing the default-password flag on doctor accounts.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash), false)
}

func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}
