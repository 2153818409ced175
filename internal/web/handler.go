package web

import (
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/server/middleware"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/telemetry"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/submissions"
)

const maxFormBytes = 2*intake.MaxAttachments*intake.MaxFileBytes + 1<<20

// Handler serves the HTML form and drives submissions for browser sessions.
type Handler struct {
	Sessions      *SessionStore
	Orchestrator  *submissions.Orchestrator
	Guard         *submissions.Guard
	SecureCookies bool

	templates *template.Template
}

// NewHandler constructs a Handler.
func NewHandler(sessions *SessionStore, orch *submissions.Orchestrator, guard *submissions.Guard) *Handler {
	if guard == nil {
		guard = submissions.NewGuard()
	}
	return &Handler{
		Sessions:     sessions,
		Orchestrator: orch,
		Guard:        guard,
		templates:    Templates(),
	}
}

// RegisterRoutes attaches the form routes. submitMW runs in front of POST /submit.
func (h *Handler) RegisterRoutes(r gin.IRoutes, submitMW ...gin.HandlerFunc) {
	r.GET("/", h.showForm)
	r.POST("/form/images", h.addImages)
	r.POST("/form/images/:sequence/:index/remove", h.removeImage)
	r.POST("/submit", append(append([]gin.HandlerFunc{}, submitMW...), h.submit)...)
	r.POST("/reset", h.reset)
	r.GET("/previews/:token", h.preview)
}

func (h *Handler) session(c *gin.Context) *Session {
	id, _ := c.Cookie(SessionCookie)
	sess, created := h.Sessions.Load(id)
	if created || id != sess.ID {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sess.ID, int(h.Sessions.TTL.Seconds()), "/", "", h.SecureCookies, true)
	}
	c.Set(middleware.SessionIDKey, sess.ID)
	return sess
}

func (h *Handler) renderForm(c *gin.Context, status int, sess *Session) {
	c.Header("Cache-Control", "no-store")
	c.Render(status, render.HTML{Template: h.templates, Name: "form.html", Data: buildFormPage(sess)})
}

func (h *Handler) showForm(c *gin.Context) {
	sess := h.session(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	h.renderForm(c, http.StatusOK, sess)
}

// applyFields copies posted scalar values into the form. Only changed fields
// have their error cleared.
func applyFields(sess *Session, mf *multipart.Form) {
	if mf == nil {
		return
	}
	for _, f := range intake.ScalarFields {
		vals, ok := mf.Value[string(f)]
		if !ok || len(vals) == 0 {
			continue
		}
		if sess.form.Data.Value(f) != vals[0] {
			_ = sess.form.SetField(f, vals[0])
		}
	}
}

// applyFiles appends posted files to each sequence and refreshes its previews.
func (h *Handler) applyFiles(sess *Session, mf *multipart.Form) error {
	if mf == nil {
		return nil
	}
	for _, seq := range intake.Sequences {
		files, err := intake.ReadAttachments(mf.File[string(seq)])
		if err != nil {
			return err
		}
		if len(files) == 0 {
			continue
		}
		if _, err := sess.form.AddAttachments(seq, files...); err != nil {
			return err
		}
		h.Sessions.refreshPreviews(sess, seq)
	}
	return nil
}

func (h *Handler) parseForm(c *gin.Context) (*multipart.Form, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormBytes)
	mf, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		return &multipart.Form{Value: c.Request.PostForm}, nil
	}
	return mf, err
}

func (h *Handler) addImages(c *gin.Context) {
	sess := h.session(c)
	mf, err := h.parseForm(c)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.formError = ""
	if err != nil {
		sess.formError = submissions.GenericMessage
		h.renderForm(c, http.StatusBadRequest, sess)
		return
	}
	applyFields(sess, mf)
	if err := h.applyFiles(sess, mf); err != nil {
		sess.formError = submissions.UserMessage(err)
		h.renderForm(c, http.StatusUnprocessableEntity, sess)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) removeImage(c *gin.Context) {
	sess := h.session(c)
	mf, err := h.parseForm(c)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err == nil {
		applyFields(sess, mf)
	}

	seq := intake.Sequence(c.Param("sequence"))
	index, convErr := strconv.Atoi(c.Param("index"))
	if convErr != nil || !seq.Valid() {
		h.renderForm(c, http.StatusNotFound, sess)
		return
	}
	if err := sess.form.RemoveAttachment(seq, index); err != nil {
		h.renderForm(c, http.StatusNotFound, sess)
		return
	}
	h.Sessions.refreshPreviews(sess, seq)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) submit(c *gin.Context) {
	sess := h.session(c)
	mf, err := h.parseForm(c)

	release, guardErr := h.Guard.Acquire(sess.ID)
	if guardErr != nil {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.formError = submissions.InFlightMessage
		h.renderForm(c, http.StatusConflict, sess)
		return
	}
	defer release()

	sess.mu.Lock()
	sess.formError = ""
	if err != nil {
		sess.formError = submissions.GenericMessage
		h.renderForm(c, http.StatusBadRequest, sess)
		sess.mu.Unlock()
		return
	}
	applyFields(sess, mf)
	if err := h.applyFiles(sess, mf); err != nil {
		sess.formError = submissions.UserMessage(err)
		h.renderForm(c, http.StatusUnprocessableEntity, sess)
		sess.mu.Unlock()
		return
	}
	snapshot := sess.form.Snapshot()
	sess.submitting = true
	sess.mu.Unlock()

	outcome := h.Orchestrator.Submit(c.Request.Context(), snapshot)
	c.Set(middleware.SubmissionIDKey, outcome.ID)
	c.Set(middleware.StatusTransitionKey, outcome.LastTransition())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.submitting = false

	if outcome.Succeeded() {
		h.Sessions.resetLocked(sess)
		telemetry.Info("web.submission_confirmed", map[string]any{
			"request_id":    c.GetString("requestId"),
			"session_id":    sess.ID,
			"submission_id": outcome.ID,
		})
		c.Header("Cache-Control", "no-store")
		c.Render(http.StatusOK, render.HTML{Template: h.templates, Name: "confirmation.html", Data: nil})
		return
	}

	if outcome.Errors != nil {
		sess.form.SetErrors(outcome.Errors)
	}
	sess.formError = outcome.Message
	h.renderForm(c, submissions.HTTPStatus(outcome), sess)
}

func (h *Handler) reset(c *gin.Context) {
	sess := h.session(c)
	sess.mu.Lock()
	h.Sessions.resetLocked(sess)
	sess.mu.Unlock()
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) preview(c *gin.Context) {
	id, _ := c.Cookie(SessionCookie)
	p, ok := h.Sessions.Previews.Get(c.Param("token"))
	if !ok || id == "" || p.Owner != id {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, p.MimeType, p.Data)
}
