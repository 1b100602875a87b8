package handlers

import (
	"github.com/gin-gonic/gin"

	"smarthire_backend/internal/middleware"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/services"
	"smarthire_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
	authenticator      middleware.Authenticator
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService, authenticator middleware.Authenticator) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
		authenticator:      authenticator,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	apps := rg.Group("/applications")
	apps.Use(middleware.AuthMiddleware(h.authenticator))
	{
		apps.GET("/me", middleware.RequireRoles(models.UserRoleJobSeeker), h.ListMine)
		apps.PATCH("/:id/status", middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin), h.UpdateStatus)
	}
}

// ListMine godoc
// @Summary Мои отклики
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=dto.ApplicationListResponse}
// @Router /applications/me [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListMine(c.Request.Context(), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", resp)
}

// UpdateStatus godoc
// @Summary Рассмотреть отклик
// @Description applied -> shortlisted|interviewed|rejected|hired; rejected и hired терминальные
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Param request body dto.UpdateApplicationStatusRequest true "Новый статус"
// @Success 200 {object} Response{data=models.Application}
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindStrict_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateStatus(c.Request.Context(), identity, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Application status updated", app)
}
