package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eventhub/internal/domain"
)

const (
	loginOTPDigits = 6
	loginOTPExpiry = time.Hour
)

type authService struct {
	userRepo      domain.UserRepository
	loginCodeRepo domain.LoginCodeRepository
	hasher        domain.PasswordHasher
	tokenIssuer   domain.TokenIssuer
	tokenExpiry   time.Duration
	mailer        domain.Mailer
	logger        *slog.Logger
}

// NewAuthService creates the two-step login flow: password check issuing an
// OTP bound to a verification key, then OTP exchange for a bearer token.
func NewAuthService(
	userRepo domain.UserRepository,
	loginCodeRepo domain.LoginCodeRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	mailer domain.Mailer,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		userRepo:      userRepo,
		loginCodeRepo: loginCodeRepo,
		hasher:        hasher,
		tokenIssuer:   tokenIssuer,
		tokenExpiry:   tokenExpiry,
		mailer:        mailer,
		logger:        logger,
	}
}

// SignUp hashes the password, creates the user, and attaches the profile.
func (s *authService) SignUp(ctx context.Context, email, phone, password string, profile *domain.Profile) (*domain.UserWithProfile, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &domain.User{
		Email:     email,
		Phone:     phone,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	profile.UserID = user.ID
	if err := s.userRepo.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return &domain.UserWithProfile{User: user, Profile: profile}, nil
}

// Login resolves the account by email or phone (exactly one is set by the
// controller's union validation), checks the password, and stores a one-time
// code under a fresh verification key. The code travels by email when the
// email shape was used; SMS delivery for the phone shape is not wired up.
func (s *authService) Login(ctx context.Context, email, phone, password string) (string, error) {
	user, err := s.userRepo.GetByEmailOrPhone(ctx, email, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", fmt.Errorf("credentials not match: %w", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.Password, password); err != nil {
		return "", fmt.Errorf("credentials not match: %w", domain.ErrUnauthorized)
	}

	otp, err := generateOTP(loginOTPDigits)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	key := uuid.NewString()
	if err := s.loginCodeRepo.Create(ctx, key, user.ID, hashOTP(otp), time.Now().Add(loginOTPExpiry)); err != nil {
		return "", fmt.Errorf("store login code: %w", err)
	}

	if email != "" {
		if err := s.mailer.SendLoginOTP(ctx, &domain.LoginOTPEmailData{Email: user.Email, OTP: otp}); err != nil {
			s.logger.Error("error sending otp email", "err", err)
		}
	}

	s.logger.Info("login code issued", "user_id", user.ID)
	return key, nil
}

func (s *authService) VerifyLogin(ctx context.Context, verificationKey, otp string) (string, *domain.UserWithProfile, error) {
	userID, consumed, err := s.loginCodeRepo.Consume(ctx, verificationKey, hashOTP(otp))
	if err != nil {
		return "", nil, fmt.Errorf("consume login code: %w", err)
	}
	if !consumed {
		return "", nil, fmt.Errorf("invalid or expired otp: %w", domain.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	token, err := s.tokenIssuer.Issue(user.User.ID, user.User.Email, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func generateOTP(digits int) (string, error) {
	const digitspace = "0123456789"
	b := make([]byte, digits)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digitspace[int(b[i])%len(digitspace)]
	}
	return string(b), nil
}

func hashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}
