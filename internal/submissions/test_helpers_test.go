package submissions

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/projects"
)

const analysisJSON = `{
  "dadosDoFormulario": "Cimento em nível crítico.",
  "interpretacaoImagemAtual": {"faseExecutiva": "Estrutura", "materiaisVisiveis": "Concreto", "materiaisProvaveis": "Blocos"},
  "interpretacaoImagemProjeto": {"caracteristicas": "Residencial, 12 pavimentos", "fasesExecutivas": "Alvenaria e acabamento"},
  "analiseAvancoFisico": "Dentro do prazo.",
  "recomendacoes": "Antecipar compras de cimento."
}`

type fakeLLM struct {
	mu       sync.Mutex
	err      error
	response string
	calls    int
	requests []llm.StructuredRequest
}

func (f *fakeLLM) GenerateStructured(ctx context.Context, req llm.StructuredRequest) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.response == "" {
		return json.RawMessage(analysisJSON), nil
	}
	return json.RawMessage(f.response), nil
}

type countingStore struct {
	mu    sync.Mutex
	keys  []string
	calls int
}

func (s *countingStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, _ = io.Copy(io.Discard, body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.keys = append(s.keys, key)
	return nil
}

func (s *countingStore) PublicURL(key string) (string, error) {
	return "https://storage.example.com/project-images/" + key, nil
}

func (s *countingStore) Bucket() string { return "project-images" }

type recordingRepo struct {
	mu      sync.Mutex
	err     error
	inserts []projects.Record
}

func (r *recordingRepo) Insert(ctx context.Context, record projects.Record) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts = append(r.inserts, record)
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.inserts)), nil
}

type pipeline struct {
	llm   *fakeLLM
	store *countingStore
	repo  *recordingRepo
	orch  *Orchestrator
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	p := &pipeline{llm: &fakeLLM{}, store: &countingStore{}, repo: &recordingRepo{}}
	p.orch = &Orchestrator{
		Analyzer: &analysis.Client{LLM: p.llm},
		Persister: &projects.Service{
			Uploader: &projects.Uploader{Store: p.store},
			Repo:     p.repo,
		},
		NewID: func() string { return "sub-1" },
	}
	return p
}

func pngAttachment(name string) intake.Attachment {
	return intake.Attachment{Name: name, MimeType: "image/png", Data: []byte("\x89PNG" + name)}
}

func validForm() intake.FormData {
	return intake.FormData{
		FullName:                     "Maria Souza",
		Email:                        "maria@construtora.com.br",
		SuppliesContactName:          "João Lima",
		SuppliesContactPhone:         "(81) 99999-0000",
		ProjectName:                  "Residencial Aurora",
		Address:                      "Rua das Flores, 100",
		City:                         "Recife",
		State:                        "PE",
		FloorCount:                   "12",
		StartDate:                    "2025-01-10",
		EndDate:                      "2026-12-20",
		ProjectDescription:           "Edifício residencial com 48 unidades.",
		CurrentPhaseDescription:      "Estrutura do 5º pavimento.",
		MaterialManagementDifficulty: "Atrasos na entrega de aço.",
		CurrentSituationImages:       []intake.Attachment{pngAttachment("atual.png")},
	}
}

func hasState(trace []State, s State) bool {
	for _, v := range trace {
		if v == s {
			return true
		}
	}
	return false
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
