package handlers

import (
	"github.com/gin-gonic/gin"

	"smarthire_backend/internal/middleware"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/services"
	"smarthire_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
	authenticator      middleware.Authenticator
}

func NewJobHandler(
	base *BaseHandler,
	jobService services.JobService,
	applicationService services.ApplicationService,
	authenticator middleware.Authenticator,
) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
		authenticator:      authenticator,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")

	requireAuth := middleware.AuthMiddleware(h.authenticator)
	employerOnly := middleware.RequireRoles(models.UserRoleEmployer)
	seekerOnly := middleware.RequireRoles(models.UserRoleJobSeeker)
	ownerOrAdmin := middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin)

	jobs.GET("", h.ListJobs)
	// /employer/me регистрируется до /:id
	jobs.GET("/employer/me", requireAuth, employerOnly, h.ListMyJobs)
	jobs.GET("/:id", middleware.OptionalAuth(h.authenticator), h.GetJob)

	jobs.POST("", requireAuth, employerOnly, h.CreateJob)
	jobs.PUT("/:id", requireAuth, ownerOrAdmin, h.UpdateJob)
	jobs.DELETE("/:id", requireAuth, ownerOrAdmin, h.DeleteJob)

	jobs.POST("/:id/apply", requireAuth, seekerOnly, h.Apply)
	jobs.GET("/:id/applications", requireAuth, ownerOrAdmin, h.ListApplications)
}

// ListJobs godoc
// @Summary Публичный список вакансий
// @Description Только одобренные, активные и неистекшие вакансии, новые первыми
// @Tags jobs
// @Produce json
// @Param jobType query string false "full-time, part-time, contract, internship, freelance"
// @Param experienceLevel query string false "entry, mid, senior, executive"
// @Param remote query bool false "Только удаленные"
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Success 200 {object} Response{data=dto.JobListResponse}
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.jobService.ListApproved(c.Request.Context(), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", resp)
}

// GetJob godoc
// @Summary Вакансия по ID
// @Description Неодобренная вакансия видна только владельцу и администратору
// @Tags jobs
// @Produce json
// @Param id path string true "ID вакансии"
// @Success 200 {object} Response{data=models.Job}
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	job, err := h.jobService.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", job)
}

// CreateJob godoc
// @Summary Создать вакансию
// @Description Вакансия создается в статусе pending в пределах лимита тарифа
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Вакансия"
// @Success 201 {object} Response{data=models.Job}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), identity, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, "Job created successfully and pending approval", job)
}

// ListMyJobs godoc
// @Summary Вакансии текущего работодателя
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Job}
// @Router /jobs/employer/me [get]
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListForEmployer(c.Request.Context(), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", jobs)
}

// UpdateJob godoc
// @Summary Обновить вакансию
// @Description Правка работодателя возвращает вакансию на модерацию. Неизвестные поля отклоняются.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Param request body dto.UpdateJobRequest true "Изменяемые поля"
// @Success 200 {object} Response{data=models.Job}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindStrict_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), identity, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Job updated successfully", job)
}

// DeleteJob godoc
// @Summary Удалить вакансию
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Success 200 {object} Response
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Job deleted successfully", nil)
}

// Apply godoc
// @Summary Откликнуться на вакансию
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Param request body dto.ApplyRequest false "Сопроводительное письмо и резюме"
// @Success 201 {object} Response{data=models.Application}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.Apply(c.Request.Context(), identity, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, "Application submitted successfully", app)
}

// ListApplications godoc
// @Summary Отклики на вакансию
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Success 200 {object} Response{data=dto.ApplicationListResponse}
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /jobs/{id}/applications [get]
func (h *JobHandler) ListApplications(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListForJob(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", resp)
}
