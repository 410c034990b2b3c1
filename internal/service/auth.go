package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
	"github.com/seva/internal/repository"
)

var (
	ErrInvalidOTP   = errors.New("invalid OTP")
	ErrInvalidPhone = errors.New("phone number is required")
	ErrUserNotFound = errors.New("user not found")
)

// AuthService drives phone login: code delivery, code check, token minting and profile upsert.
type AuthService struct {
	otp       *Authenticator
	users     UserStore
	tokens    *TokenService
	exposeOTP bool
}

func NewAuthService(otp *Authenticator, users UserStore, tokens *TokenService, exposeOTP bool) *AuthService {
	return &AuthService{otp: otp, users: users, tokens: tokens, exposeOTP: exposeOTP}
}

type SendOTPResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`
}

type VerifyOTPResponse struct {
	Token     string `json:"token"`
	IsNewUser bool   `json:"isNewUser"`
}

// SendOTP issues a code. There is no SMS gateway: the code is logged and, in dev, returned.
func (s *AuthService) SendOTP(ctx context.Context, phone string) (*SendOTPResponse, error) {
	if phone == "" {
		return nil, ErrInvalidPhone
	}
	code, err := s.otp.Issue(ctx, phone)
	if err != nil {
		return nil, err
	}
	resp := &SendOTPResponse{Message: "OTP sent successfully"}
	if s.exposeOTP {
		logger.Infof("SIMULATION: OTP for %s is %s", logger.MaskPhone(phone), code)
		resp.OTP = code
	} else {
		logger.Infof("SIMULATION: OTP issued for %s", logger.MaskPhone(phone))
	}
	return resp, nil
}

// VerifyOTP consumes the code and mints a token. Phones without an account get role USER.
// Phone and code are compared exactly as given.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (*VerifyOTPResponse, error) {
	if phone == "" || !s.otp.Validate(ctx, phone, code) {
		logger.Infof("verify-otp: rejected for %s", logger.MaskPhone(phone))
		return nil, ErrInvalidOTP
	}
	role := model.RoleUser
	isNew := false
	u, err := s.users.GetByPhone(ctx, phone)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		isNew = true
	case err != nil:
		return nil, err
	default:
		role = effectiveRole(u)
	}
	token, err := s.tokens.Sign(phone, role)
	if err != nil {
		return nil, err
	}
	return &VerifyOTPResponse{Token: token, IsNewUser: isNew}, nil
}

// Register creates the account for phone or updates the fields present in upd.
// New accounts are plain users: never admin, never a volunteer.
func (s *AuthService) Register(ctx context.Context, phone string, upd model.ProfileUpdate) (*model.User, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if err == nil {
		upd.Apply(u)
		if err := s.users.Update(ctx, u); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	u = &model.User{
		ID:          uuid.New().String(),
		PhoneNumber: phone,
		Role:        model.RoleUser,
		CreatedAt:   time.Now().UTC(),
	}
	upd.Apply(u)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Infof("register: new user %s", logger.MaskPhone(phone))
	return u, nil
}

func (s *AuthService) Me(ctx context.Context, phone string) (*model.User, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func effectiveRole(u *model.User) model.Role {
	if u.IsAdmin || u.Role == model.RoleAdmin {
		return model.RoleAdmin
	}
	return model.RoleUser
}
