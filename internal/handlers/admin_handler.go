package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/middleware"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/services"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/internal/validator"
	"smarthire_backend/pkg/apperrors"
)

type AdminHandler struct {
	*BaseHandler
	adminService  services.AdminService
	authenticator middleware.Authenticator
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, authenticator middleware.Authenticator) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		adminService:  adminService,
		authenticator: authenticator,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.authenticator))
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/jobs", h.ListJobs)
		admin.PATCH("/jobs/:id/status", h.UpdateJobStatus)
		admin.PATCH("/users/:id/status", h.UpdateUserStatus)
		admin.PUT("/users/:id/subscription", h.AssignPlan)
		admin.POST("/sweep", h.RunSweep)
	}
}

// UpdateJobStatus godoc
// @Summary Модерация вакансии
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Param request body dto.UpdateJobStatusRequest true "approved, rejected или expired"
// @Success 200 {object} Response{data=models.Job}
// @Failure 400 {object} apperrors.ErrorResponse "Invalid status value"
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /admin/jobs/{id}/status [patch]
func (h *AdminHandler) UpdateJobStatus(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			if _, bad := vErr.Errors["status"]; bad {
				apperrors.HandleError(c, apperrors.ErrInvalidJobStatus.WithDetails(vErr.Errors))
				return
			}
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
			return
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	job, err := h.adminService.ChangeJobStatus(c.Request.Context(), identity, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Job status updated to "+string(job.Status), job)
}

// ListJobs godoc
// @Summary Очередь модерации
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved, rejected, expired"
// @Success 200 {object} Response{data=[]models.Job}
// @Router /admin/jobs [get]
func (h *AdminHandler) ListJobs(c *gin.Context) {
	jobs, err := h.adminService.ListJobs(c.Request.Context(), models.JobStatus(c.Query("status")))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", jobs)
}

// UpdateUserStatus godoc
// @Summary Активировать или деактивировать пользователя
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body dto.UpdateUserStatusRequest true "isActive"
// @Success 200 {object} Response{data=models.User}
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/users/{id}/status [patch]
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.adminService.SetUserActive(c.Request.Context(), identity, c.Param("id"), *req.IsActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "User status updated", user)
}

// AssignPlan godoc
// @Summary Назначить тариф работодателю
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID работодателя"
// @Param request body dto.AssignPlanRequest true "Тариф"
// @Success 200 {object} Response{data=models.Subscription}
// @Router /admin/users/{id}/subscription [put]
func (h *AdminHandler) AssignPlan(c *gin.Context) {
	var req dto.AssignPlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.adminService.AssignPlan(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Subscription updated", sub)
}

// RunSweep godoc
// @Summary Запустить истечение сроков
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=dto.SweepResult}
// @Router /admin/sweep [post]
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result := h.adminService.RunSweep(c.Request.Context())
	logger.CtxInfo(c.Request.Context(), "Manual sweep finished",
		"jobs_expired", result.JobsExpired,
		"subscriptions_expired", result.SubscriptionsExpired,
	)
	h.OK(c, "Sweep completed", result)
}
