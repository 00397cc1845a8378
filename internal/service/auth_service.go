package service

import (
	"context"
	"errors"
	"time"

	"booth-pos-backend/config"
	"booth-pos-backend/internal/auth"
	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/repository"
	apperrors "booth-pos-backend/pkg/app_errors"
	"booth-pos-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminPassword  = "admin123"
	defaultVendorPassword = "vendor123"
)

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	UpdateAdminPassword(ctx context.Context, oldPassword, newPassword string) error
	UpdateVendorDefaultPassword(ctx context.Context, newPassword string) error
	IsDefaultAdminPassword(ctx context.Context) (bool, error)
	// EnsureDefaultPasswords seeds the admin/vendor hashes on first boot.
	EnsureDefaultPasswords(ctx context.Context) error
}

type AuthServiceImpl struct {
	settings  repository.SettingsRepository
	eventRepo repository.EventRepository
	cfg       config.AuthConfig
}

func NewAuthService(
	settings repository.SettingsRepository,
	eventRepository repository.EventRepository,
	cfg config.AuthConfig,
) AuthService {
	return &AuthServiceImpl{
		settings:  settings,
		eventRepo: eventRepository,
		cfg:       cfg,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	switch req.Role {
	case model.RoleAdmin:
		ok, err := s.verifySetting(ctx, repository.SettingAdminPassword, req.Password)
		if err != nil {
			return nil, err
		}
		if ok {
			return s.issue(model.RoleAdmin, model.AccessAll, nil)
		}

	case model.RoleVendor:
		// 摊主可用管理員密碼或通用摊主密碼登入，取得全場權杖
		ok, err := s.verifySetting(ctx, repository.SettingAdminPassword, req.Password)
		if err != nil {
			return nil, err
		}
		if !ok {
			ok, err = s.verifySetting(ctx, repository.SettingVendorPassword, req.Password)
			if err != nil {
				return nil, err
			}
		}
		if ok {
			return s.issue(model.RoleVendor, model.AccessAll, nil)
		}

		// 場次專屬密碼只發給綁定該場次的權杖
		if req.EventID != nil {
			event, err := s.eventRepo.FindByID(ctx, *req.EventID)
			if err != nil {
				if errors.Is(err, apperrors.ErrEventNotFound) {
					return nil, apperrors.ErrWrongCredentials
				}
				return nil, err
			}
			if event.VendorPassword != nil && verifyPassword(req.Password, *event.VendorPassword) {
				return s.issue(model.RoleVendor, model.AccessEvent, req.EventID)
			}
		}
	}

	return nil, apperrors.ErrWrongCredentials
}

func (s *AuthServiceImpl) UpdateAdminPassword(ctx context.Context, oldPassword, newPassword string) error {
	ok, err := s.verifySetting(ctx, repository.SettingAdminPassword, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrWrongCredentials
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.settings.Set(ctx, repository.SettingAdminPassword, hash)
}

func (s *AuthServiceImpl) UpdateVendorDefaultPassword(ctx context.Context, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.settings.Set(ctx, repository.SettingVendorPassword, hash)
}

func (s *AuthServiceImpl) IsDefaultAdminPassword(ctx context.Context) (bool, error) {
	return s.verifySetting(ctx, repository.SettingAdminPassword, defaultAdminPassword)
}

func (s *AuthServiceImpl) EnsureDefaultPasswords(ctx context.Context) error {
	seeds := map[string]string{
		repository.SettingAdminPassword:  defaultAdminPassword,
		repository.SettingVendorPassword: defaultVendorPassword,
	}

	for key, password := range seeds {
		_, err := s.settings.Get(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			return err
		}

		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		if err := s.settings.Set(ctx, key, hash); err != nil {
			return err
		}
		logger.WithComponent("auth_service").Info("initialized default password: " + key)
	}

	return nil
}

func (s *AuthServiceImpl) issue(role model.Role, access model.AccessScope, eventID *int) (*model.LoginResponse, error) {
	claims := model.Claims{
		Subject: string(role),
		Role:    role,
		Access:  access,
		EventID: eventID,
	}

	ttl := time.Duration(s.cfg.TokenTTLHours) * time.Hour
	token, err := auth.IssueToken(s.cfg.JWTSecret, ttl, claims)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Message: "Login successful",
		Role:    role,
		Access:  access,
		EventID: eventID,
		Token:   token,
	}, nil
}

func (s *AuthServiceImpl) verifySetting(ctx context.Context, key, password string) (bool, error) {
	hash, err := s.settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return false, nil
		}
		return false, err
	}
	return verifyPassword(password, hash), nil
}

func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
