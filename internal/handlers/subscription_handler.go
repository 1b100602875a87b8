package handlers

import (
	"github.com/gin-gonic/gin"

	"smarthire_backend/internal/middleware"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/services"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
	authenticator       middleware.Authenticator
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService, authenticator middleware.Authenticator) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
		authenticator:       authenticator,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sub := rg.Group("/subscription")
	{
		sub.GET("/plans", h.GetPlans)
		sub.GET("/me",
			middleware.AuthMiddleware(h.authenticator),
			middleware.RequireRoles(models.UserRoleEmployer),
			h.GetMine,
		)
	}
}

// GetPlans godoc
// @Summary Каталог тарифов
// @Tags subscription
// @Produce json
// @Success 200 {object} Response{data=[]dto.PlanInfo}
// @Router /subscription/plans [get]
func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	h.OK(c, "", h.subscriptionService.Plans())
}

// GetMine godoc
// @Summary Подписка текущего работодателя
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.Subscription}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /subscription/me [get]
func (h *SubscriptionHandler) GetMine(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Mine(c.Request.Context(), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "", sub)
}
