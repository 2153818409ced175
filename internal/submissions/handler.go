package submissions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/server/middleware"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/server/respond"
)

// maxRequestBytes bounds a multipart submission: ten images plus form fields.
const maxRequestBytes = 2*intake.MaxAttachments*intake.MaxFileBytes + 1<<20

// Handler exposes the orchestrator as a JSON API.
type Handler struct {
	Orchestrator *Orchestrator
	Guard        *Guard
}

// NewHandler constructs a Handler.
func NewHandler(o *Orchestrator, guard *Guard) *Handler {
	if guard == nil {
		guard = NewGuard()
	}
	return &Handler{Orchestrator: o, Guard: guard}
}

// RegisterRoutes attaches submission routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mws ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mws...), h.create)
	rg.POST("/submissions", handlers...)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	mf, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_form", "multipart/form-data body is required", nil)
		return
	}

	state, err := intake.FormFromMultipart(mf)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCode(err), UserMessage(err), nil)
		return
	}

	release, err := h.Guard.Acquire(c.ClientIP())
	if err != nil {
		respond.Error(c, http.StatusConflict, ErrorCode(err), InFlightMessage, nil)
		return
	}
	defer release()

	outcome := h.Orchestrator.Submit(c.Request.Context(), state.Snapshot())
	c.Set(middleware.SubmissionIDKey, outcome.ID)
	c.Set(middleware.StatusTransitionKey, outcome.LastTransition())

	if !outcome.Succeeded() {
		var details any
		if !outcome.Errors.Empty() {
			details = outcome.Errors.Strings()
		}
		respond.Error(c, HTTPStatus(outcome), ErrorCode(outcome.Err), outcome.Message, details)
		return
	}

	respond.JSON(c, HTTPStatus(outcome), gin.H{
		"id":       outcome.ID,
		"recordId": outcome.RecordID,
		"status":   outcome.State,
	})
}
