package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/x986x/CW6/internal/config"
	"github.com/x986x/CW6/internal/mail"
	"github.com/x986x/CW6/internal/models"
	"github.com/x986x/CW6/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const recoveryPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const recoveryPasswordLength = 12

type UserService struct {
	userRepo *repositories.UserRepo
	mailer   *mail.Mailer
	cfg      *config.Config
	log      *zap.Logger
}

func NewUserService(userRepo *repositories.UserRepo, mailer *mail.Mailer, cfg *config.Config, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, mailer: mailer, cfg: cfg, log: log}
}

// Register creates an account and mails a verification link valid for the
// configured TTL.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	v := &models.EmailVerification{
		UserID:     u.ID,
		Code:       uuid.New(),
		Expiration: time.Now().Add(s.cfg.VerificationTTL),
	}
	if err := s.userRepo.CreateVerification(ctx, v); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/api/v1/auth/verify?email=%s&code=%s", s.cfg.BaseURL, u.Email, v.Code)
	body := fmt.Sprintf("Follow the link to verify your account: %s", link)
	if err := s.mailer.SendWithRetry(ctx, "Account verification", body, []string{u.Email}); err != nil {
		// The account exists either way; the user can request a new code.
		s.log.Error("failed to send verification email", zap.String("email", u.Email), zap.Error(err))
	}

	return u, nil
}

// Authenticate checks email/password and returns the user on success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !u.IsActive {
		return nil, fmt.Errorf("account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return u, nil
}

// Verify marks the account verified if the code matches and is not expired.
func (s *UserService) Verify(ctx context.Context, email string, code uuid.UUID) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("unknown account")
	}

	v, err := s.userRepo.GetVerification(ctx, u.ID, code)
	if err != nil {
		return fmt.Errorf("invalid verification code")
	}
	if v.IsExpired(time.Now()) {
		return fmt.Errorf("verification code expired")
	}

	return s.userRepo.SetVerified(ctx, u.ID)
}

// RecoverPassword generates a fresh random password, stores its hash and
// mails the cleartext to the account address.
func (s *UserService) RecoverPassword(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("unknown account")
	}

	password, err := randomPassword(recoveryPasswordLength)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetPasswordHash(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	body := fmt.Sprintf("Your new password: %s", password)
	return s.mailer.SendWithRetry(ctx, "Password Recovery", body, []string{u.Email})
}

func randomPassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(recoveryPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = recoveryPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}
