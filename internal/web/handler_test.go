package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/projects"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/submissions"
)

const analysisJSON = `{"dadosDoFormulario":"a","interpretacaoImagemAtual":{"faseExecutiva":"b","materiaisVisiveis":"c","materiaisProvaveis":"d"},"interpretacaoImagemProjeto":{"caracteristicas":"e","fasesExecutivas":"f"},"analiseAvancoFisico":"g","recomendacoes":"h"}`

type stubLLM struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubLLM) GenerateStructured(ctx context.Context, req llm.StructuredRequest) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(analysisJSON), nil
}

type memStore struct {
	mu   sync.Mutex
	puts int
}

func (m *memStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, _ = io.Copy(io.Discard, body)
	m.mu.Lock()
	m.puts++
	m.mu.Unlock()
	return nil
}

func (m *memStore) PublicURL(key string) (string, error) { return "/files/project-images/" + key, nil }

func (m *memStore) Bucket() string { return "project-images" }

type env struct {
	router  *gin.Engine
	handler *Handler
	llm     *stubLLM
	store   *memStore
	repo    *projects.MemoryRepo
	cookie  *http.Cookie
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e := &env{llm: &stubLLM{}, store: &memStore{}, repo: projects.NewMemoryRepo()}
	orch := &submissions.Orchestrator{
		Analyzer:  &analysis.Client{LLM: e.llm},
		Persister: &projects.Service{Uploader: &projects.Uploader{Store: e.store}, Repo: e.repo},
	}
	e.handler = NewHandler(NewSessionStore(time.Hour, nil), orch, nil)
	e.router = gin.New()
	e.handler.RegisterRoutes(e.router)
	return e
}

func (e *env) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			e.cookie = c
		}
	}
	return rec
}

func completeFields() map[string]string {
	return map[string]string{
		"fullName":                     "Maria Souza",
		"email":                        "maria@construtora.com.br",
		"suppliesContactName":          "João Lima",
		"suppliesContactPhone":         "(81) 99999-0000",
		"projectName":                  "Residencial Aurora",
		"address":                      "Rua das Flores, 100",
		"city":                         "Recife",
		"state":                        "PE",
		"floorCount":                   "12",
		"startDate":                    "2025-01-10",
		"endDate":                      "2026-12-20",
		"projectDescription":           "Edifício residencial.",
		"currentPhaseDescription":      "Estrutura.",
		"materialManagementDifficulty": "Atraso no aço.",
	}
}

func formBody(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, names := range files {
		for _, name := range names {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
			h.Set("Content-Type", "image/png")
			part, err := w.CreatePart(h)
			require.NoError(t, err)
			_, err = part.Write([]byte("\x89PNG\r\n\x1a\n" + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func fileNames(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d.png", prefix, i)
	}
	return out
}

func (e *env) session(t *testing.T) *Session {
	t.Helper()
	require.NotNil(t, e.cookie)
	sess, created := e.handler.Sessions.Load(e.cookie.Value)
	require.False(t, created)
	return sess
}

func TestShowFormRendersFieldsets(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, legend := range []string{"Informações de Contato", "Detalhes do Projeto", "Descrição e Status", "Mídia do Projeto"} {
		assert.Contains(t, body, legend)
	}
	assert.Contains(t, body, `<option value="PE">Pernambuco</option>`)
	assert.Contains(t, body, "Enviar para Análise")
	require.NotNil(t, e.cookie)
	assert.True(t, e.cookie.HttpOnly)
}

func TestAddImagesCapsAndReleasesPreviews(t *testing.T) {
	e := newEnv(t)
	e.do(t, http.MethodGet, "/", nil, "")

	body, ct := formBody(t, map[string]string{"city": "Recife"}, map[string][]string{"currentSituationImage": fileNames("foto", 7)})
	rec := e.do(t, http.MethodPost, "/form/images", body, ct)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 5, e.handler.Sessions.Previews.Len())

	body, ct = formBody(t, nil, map[string][]string{"currentSituationImage": {"extra.png"}})
	e.do(t, http.MethodPost, "/form/images", body, ct)
	assert.Equal(t, 5, e.handler.Sessions.Previews.Len())

	page := e.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, page, "Limite de 5 imagens atingido")
	assert.Contains(t, page, `value="Recife"`)

	sess := e.session(t)
	sess.mu.Lock()
	names := make([]string, 0, 5)
	for _, a := range sess.form.Data.CurrentSituationImages {
		names = append(names, a.Name)
	}
	sess.mu.Unlock()
	assert.Equal(t, fileNames("foto", 5), names)
}

func TestRemoveImageKeepsOrder(t *testing.T) {
	e := newEnv(t)
	body, ct := formBody(t, nil, map[string][]string{"finalProjectImage": fileNames("planta", 3)})
	e.do(t, http.MethodPost, "/form/images", body, ct)

	body, ct = formBody(t, nil, nil)
	rec := e.do(t, http.MethodPost, "/form/images/finalProjectImage/1/remove", body, ct)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 2, e.handler.Sessions.Previews.Len())

	sess := e.session(t)
	sess.mu.Lock()
	got := []string{sess.form.Data.FinalProjectImages[0].Name, sess.form.Data.FinalProjectImages[1].Name}
	sess.mu.Unlock()
	assert.Equal(t, []string{"planta0.png", "planta2.png"}, got)

	body, ct = formBody(t, nil, nil)
	rec = e.do(t, http.MethodPost, "/form/images/finalProjectImage/9/remove", body, ct)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreviewIsScopedToSession(t *testing.T) {
	e := newEnv(t)
	body, ct := formBody(t, nil, map[string][]string{"currentSituationImage": {"a.png"}})
	e.do(t, http.MethodPost, "/form/images", body, ct)

	sess := e.session(t)
	sess.mu.Lock()
	token := sess.previews[intake.SequenceCurrentSituation][0]
	sess.mu.Unlock()

	rec := e.do(t, http.MethodGet, "/previews/"+token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasSuffix(rec.Body.String(), "a.png"))

	e.cookie = nil
	rec = e.do(t, http.MethodGet, "/previews/"+token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitValidationKeepsValues(t *testing.T) {
	e := newEnv(t)
	fields := completeFields()
	fields["email"] = "sem-arroba"
	body, ct := formBody(t, fields, nil)

	rec := e.do(t, http.MethodPost, "/submit", body, ct)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Formato de e-mail inválido.")
	assert.Contains(t, page, "Pelo menos uma imagem da situação atual é obrigatória.")
	assert.Contains(t, page, "Por favor, corrija os campos destacados.")
	assert.Contains(t, page, `value="Residencial Aurora"`)
	assert.Zero(t, e.llm.calls)
}

func TestSubmitSuccessShowsConfirmationAndResets(t *testing.T) {
	e := newEnv(t)
	body, ct := formBody(t, completeFields(), map[string][]string{"currentSituationImage": {"atual.png"}})

	rec := e.do(t, http.MethodPost, "/submit", body, ct)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Envio Concluído!")
	assert.Contains(t, rec.Body.String(), "Enviar Outro Formulário")
	assert.Len(t, e.repo.All(), 1)
	assert.Equal(t, 1, e.store.puts)
	assert.Zero(t, e.handler.Sessions.Previews.Len())

	page := e.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.NotContains(t, page, `value="Residencial Aurora"`)
}

func TestSubmitAnalysisFailureRetainsForm(t *testing.T) {
	e := newEnv(t)
	e.llm.err = errors.New("model overloaded")
	body, ct := formBody(t, completeFields(), map[string][]string{"currentSituationImage": {"atual.png"}})

	rec := e.do(t, http.MethodPost, "/submit", body, ct)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Falha na análise completa pela IA.")
	assert.Contains(t, page, `value="Residencial Aurora"`)
	assert.Zero(t, e.store.puts)
	assert.Equal(t, 1, e.handler.Sessions.Previews.Len())

	e.llm.err = nil
	body, ct = formBody(t, completeFields(), nil)
	rec = e.do(t, http.MethodPost, "/submit", body, ct)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, e.repo.All(), 1)
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	e := newEnv(t)
	e.do(t, http.MethodGet, "/", nil, "")
	release, err := e.handler.Guard.Acquire(e.cookie.Value)
	require.NoError(t, err)
	defer release()

	body, ct := formBody(t, completeFields(), map[string][]string{"currentSituationImage": {"atual.png"}})
	rec := e.do(t, http.MethodPost, "/submit", body, ct)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, e.llm.calls)
}

func TestResetClearsForm(t *testing.T) {
	e := newEnv(t)
	body, ct := formBody(t, map[string]string{"city": "Olinda"}, map[string][]string{"currentSituationImage": {"a.png"}})
	e.do(t, http.MethodPost, "/form/images", body, ct)

	rec := e.do(t, http.MethodPost, "/reset", nil, "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, e.handler.Sessions.Previews.Len())
	assert.NotContains(t, e.do(t, http.MethodGet, "/", nil, "").Body.String(), `value="Olinda"`)
}
