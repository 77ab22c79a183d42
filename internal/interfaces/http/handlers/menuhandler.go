package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	menuApp "rosmarino/internal/application/menu"
	"rosmarino/internal/shared/logger"
	"rosmarino/internal/shared/utils"
)

// menuService is the slice of the menu application service used by this
// handler. Content resolution never fails, so there are no error returns.
type menuService interface {
	GetMenu(ctx context.Context, locale string) menuApp.MenuView
	GetMenuGrouped(ctx context.Context, locale string) []menuApp.CategoryGroupView
}

type MenuHandler struct {
	service menuService
	logger  logger.Interface
}

func NewMenuHandler(service menuService, logger logger.Interface) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// GetMenu returns the localized menu: ordered categories plus the flat list
// of available items. Unsupported locales fall back to the default.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	view := h.service.GetMenu(c.Request.Context(), c.Query("locale"))
	utils.SuccessResponse(c, http.StatusOK, "", view)
}

// GetMenuByCategory returns the localized menu grouped per category, in
// display order, with available items only.
func (h *MenuHandler) GetMenuByCategory(c *gin.Context) {
	groups := h.service.GetMenuGrouped(c.Request.Context(), c.Query("locale"))
	utils.SuccessResponse(c, http.StatusOK, "", groups)
}
