package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"solarops/internal/domain"
	jwtsvc "solarops/internal/pkg/jwt"

	"solarops/internal/mq"
)

type Service struct {
	users     UserRepository
	refresh   RefreshTokenRepository
	otp       OTPStore
	publisher EventPublisher
	jwt       *jwtsvc.Service
	log       *zap.Logger
}

func NewService(
	users UserRepository,
	refresh RefreshTokenRepository,
	otp OTPStore,
	publisher EventPublisher,
	jwt *jwtsvc.Service,
	log *zap.Logger,
) *Service {
	return &Service{
		users:     users,
		refresh:   refresh,
		otp:       otp,
		publisher: publisher,
		jwt:       jwt,
		log:       log,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserPublic, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.UserRole(req.Role),
		Name:         req.Name,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return &UserPublic{ID: u.ID, Role: string(u.Role), Name: u.Name, Email: u.Email}, nil
}

// Login checks the password and sends a one-time code; tokens are only
// issued after VerifyOTP.
func (s *Service) Login(ctx context.Context, req LoginRequest) error {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return ErrInvalidCredentials
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.otp.Set(ctx, u.Email, code); err != nil {
		return err
	}

	event := mq.EmailEvent{
		Recipients: []string{u.Email},
		Subject:    "Your login code",
		HTMLBody:   fmt.Sprintf("<p>Your verification code is <b>%s</b>. It expires in 5 minutes.</p>", code),
	}
	if err := s.publisher.Publish(mq.KeyNotifyEmail, event); err != nil {
		s.log.Error("publish otp email", zap.String("email", u.Email), zap.Error(err))
	}
	return nil
}

func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*TokenPair, *UserPublic, error) {
	stored, err := s.otp.Get(ctx, req.Email)
	if err != nil {
		return nil, nil, ErrInvalidOTP
	}
	if stored != req.Code {
		return nil, nil, ErrInvalidOTP
	}
	_ = s.otp.Delete(ctx, req.Email)

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return pair, &UserPublic{ID: u.ID, Role: string(u.Role), Name: u.Name, Email: u.Email}, nil
}

// Refresh rotates the refresh token: the presented token is revoked
// and a fresh pair is issued.
func (s *Service) Refresh(ctx context.Context, token string) (*TokenPair, error) {
	stored, err := s.refresh.GetActive(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if err := s.refresh.Revoke(ctx, token); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, u)
}

func (s *Service) issueTokens(ctx context.Context, u *domain.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	rec := &domain.RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(s.jwt.RefreshTTL()),
	}
	if err := s.refresh.Create(ctx, rec); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// FindUserByEmail resolves an identity for audit attribution.
func (s *Service) FindUserByEmail(ctx context.Context, email string) (*UserPublic, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &UserPublic{ID: u.ID, Role: string(u.Role), Name: u.Name, Email: u.Email}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
