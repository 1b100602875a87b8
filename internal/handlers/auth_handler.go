package handlers

import (
	"github.com/gin-gonic/gin"

	"smarthire_backend/internal/middleware"
	"smarthire_backend/internal/services"
	"smarthire_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
	}

	protected := group.Group("")
	protected.Use(middleware.AuthMiddleware(h.authService))
	{
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.PUT("/change-password", h.ChangePassword)
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создает соискателя или работодателя. Работодатель получает пробный тариф free на 7 дней.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} Response{data=dto.AuthResponse}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, "User registered successfully", resp)
}

// Login godoc
// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} Response{data=dto.AuthResponse}
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Login successful", resp)
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", user)
}

// UpdateProfile godoc
// @Summary Обновить профиль
// @Description Меняются только разрешенные поля; email, password, role и неизвестные поля отклоняются.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindStrict_JSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Profile updated successfully", user)
}

// ChangePassword godoc
// @Summary Сменить пароль
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} Response
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), identity.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Password changed successfully", nil)
}
