package handler

import (
	"errors"
	"net/http"
	"strconv"

	"instamailer/internal/model"
	"instamailer/internal/repository"
	"instamailer/internal/service"

	"github.com/labstack/echo/v4"
)

// DraftHandler translates draft operations into HTTP responses. It is the only
// layer that turns errors into status codes: not-found ids become 404, rejected
// re-sends 409, everything else a generic 500.
type DraftHandler struct {
	draftService service.DraftService
	logger       echo.Logger
}

func NewDraftHandler(draftService service.DraftService, logger echo.Logger) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		logger:       logger,
	}
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	Recipient string `json:"recipient"`
	Tone      string `json:"tone"`
	Type      string `json:"type"`
}

// Generate creates a draft from a prompt and saves it
func (h *DraftHandler) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Prompt == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Prompt is required",
		})
	}
	if req.Recipient == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Recipient is required",
		})
	}

	draft, err := h.draftService.CreateDraft(c.Request().Context(), req.Prompt, req.Recipient, req.Tone, req.Type)
	if err != nil {
		h.logger.Error("Failed to generate email:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Error generating email",
		})
	}

	return c.JSON(http.StatusOK, draft)
}

// Send dispatches a stored draft over SMTP
func (h *DraftHandler) Send(c echo.Context) error {
	id, err := draftID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid draft id",
		})
	}

	err = h.draftService.SendDraft(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "sent",
			"message": "Email sent successfully",
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Draft not found",
		})
	case errors.Is(err, service.ErrAlreadyDispatched):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Draft was already dispatched",
		})
	case errors.Is(err, service.ErrSendFailed):
		h.logger.Error("Failed to send draft:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to send email",
		})
	default:
		h.logger.Error("Unexpected error sending draft:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Internal server error",
		})
	}
}

// List returns every draft, newest first
func (h *DraftHandler) List(c echo.Context) error {
	drafts, err := h.draftService.ListDrafts(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to fetch emails:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Error fetching emails",
		})
	}

	if drafts == nil {
		drafts = []*model.Draft{}
	}
	return c.JSON(http.StatusOK, drafts)
}

// Stats returns the aggregate report over all drafts
func (h *DraftHandler) Stats(c echo.Context) error {
	report, err := h.draftService.GetStats(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to calculate stats:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Error calculating stats",
		})
	}

	return c.JSON(http.StatusOK, report)
}

// Delete removes a draft
func (h *DraftHandler) Delete(c echo.Context) error {
	id, err := draftID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid draft id",
		})
	}

	if err := h.draftService.DeleteDraft(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Draft not found",
			})
		}
		h.logger.Error("Failed to delete email:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Error deleting email",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Email deleted successfully",
	})
}

type updateDraftRequest struct {
	Content string `json:"content"`
}

// UpdateDraft replaces a draft's content
func (h *DraftHandler) UpdateDraft(c echo.Context) error {
	id, err := draftID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid draft id",
		})
	}

	var req updateDraftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if err := h.draftService.UpdateContent(c.Request().Context(), id, req.Content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Draft not found",
			})
		}
		h.logger.Error("Failed to update draft:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Error updating draft",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Draft updated",
	})
}

func draftID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
