package services

import (
	"context"
	"strings"
	"time"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error

	// Authenticate проверяет токен и активность пользователя
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
	// SeedAdmin создает первого администратора, если email еще свободен
	SeedAdmin(ctx context.Context, email, password, name string) (bool, error)
}

type AuthServiceImpl struct {
	store  repositories.Store
	tokens *auth.TokenManager
	now    func() time.Time
}

func NewAuthService(store repositories.Store, tokens *auth.TokenManager, now func() time.Time) AuthService {
	return &AuthServiceImpl{store: store, tokens: tokens, now: now}
}

// Register - регистрация соискателя или работодателя.
// Работодатель сразу получает пробную подписку free.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role != models.UserRoleJobSeeker && req.Role != models.UserRoleEmployer {
		return nil, apperrors.ErrInvalidUserRole
	}
	if req.Role == models.UserRoleEmployer && strings.TrimSpace(req.CompanyName) == "" {
		return nil, apperrors.ValidationError(map[string]string{
			"companyName": "Company name is required for employers",
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
		CompanyName:  strings.TrimSpace(req.CompanyName),
	}

	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		if user.IsEmployer() {
			return tx.Subscriptions().Create(ctx, models.NewTrialSubscription(user.ID, s.now()))
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

// Login - аутентификация по email и паролю
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.findUser(ctx, userID)
}

// UpdateProfile применяет только заданные поля запроса
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfilePatch(user, req)

	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash

	if err := s.store.Users().Update(ctx, user); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "Password changed", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}

	user, err := s.store.Users().FindByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	return &auth.Identity{UserID: user.ID, Role: user.Role, Email: user.Email}, nil
}

func (s *AuthServiceImpl) SeedAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	_, err := s.store.Users().FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := s.store.Users().Create(ctx, admin); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// --- helpers ---

func (s *AuthServiceImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{User: user, Token: token}, nil
}

func (s *AuthServiceImpl) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func applyProfilePatch(user *models.User, req *dto.UpdateProfileRequest) {
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Skills != nil {
		user.Skills = append([]string(nil), (*req.Skills)...)
	}
	if req.Education != nil {
		edu := make([]models.Education, 0, len(*req.Education))
		for _, e := range *req.Education {
			edu = append(edu, models.Education{Degree: e.Degree, Institution: e.Institution, Year: e.Year, GPA: e.GPA})
		}
		user.Education = edu
	}
	if req.Experience != nil {
		exp := make([]models.Experience, 0, len(*req.Experience))
		for _, e := range *req.Experience {
			exp = append(exp, models.Experience{
				Company:     e.Company,
				Position:    e.Position,
				StartDate:   e.StartDate,
				EndDate:     e.EndDate,
				Description: e.Description,
				Current:     e.Current,
			})
		}
		user.Experience = exp
	}
	if req.Certifications != nil {
		certs := make([]models.Certification, 0, len(*req.Certifications))
		for _, c := range *req.Certifications {
			certs = append(certs, models.Certification{Name: c.Name, Issuer: c.Issuer, Date: c.Date, ExpiryDate: c.ExpiryDate})
		}
		user.Certifications = certs
	}
	if req.Location != nil {
		user.Location = models.Location{City: req.Location.City, Country: req.Location.Country}
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.CompanyName != nil {
		user.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.CompanySize != nil {
		user.CompanySize = models.CompanySize(*req.CompanySize)
	}
	if req.Industry != nil {
		user.Industry = *req.Industry
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
}
