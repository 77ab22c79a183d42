package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rosmarino/internal/infrastructure/attribution"
	"rosmarino/internal/interfaces/dto"
	"rosmarino/internal/shared/errors"
	"rosmarino/internal/shared/logger"
	"rosmarino/internal/shared/utils"
)

// submissionService is the slice of the submission pipeline used by this
// handler.
type submissionService interface {
	SubmitContact(ctx context.Context, req dto.ContactRequest) error
	SubscribeNewsletter(ctx context.Context, req dto.NewsletterRequest) error
}

type SubmissionHandler struct {
	service     submissionService
	attribution attribution.Store
	logger      logger.Interface
}

func NewSubmissionHandler(service submissionService, store attribution.Store, logger logger.Interface) *SubmissionHandler {
	return &SubmissionHandler{
		service:     service,
		attribution: store,
		logger:      logger,
	}
}

// SubmitContact handles a contact-form submission. Referral fields present in
// the payload win; the stored attribution record fills the gaps.
func (h *SubmissionHandler) SubmitContact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for contact submission", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Invalid request body"))
		return
	}

	if rec := h.attribution.Read(c); rec != nil {
		req.MergeAttribution(rec.SubmissionFields())
	}

	if err := h.service.SubmitContact(c.Request.Context(), req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Your message has been sent", nil)
}

// SubscribeNewsletter handles a newsletter signup.
func (h *SubmissionHandler) SubscribeNewsletter(c *gin.Context) {
	var req dto.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for newsletter signup", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Invalid request body"))
		return
	}

	if err := h.service.SubscribeNewsletter(c.Request.Context(), req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "You are now subscribed to our newsletter", nil)
}
