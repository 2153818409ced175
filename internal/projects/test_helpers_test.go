package projects

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
)

type fakeStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	putErr   map[string]error
	urlErr   error
	putCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte), putErr: make(map[string]error)}
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	for name, err := range f.putErr {
		if len(key) >= len(name) && key[len(key)-len(name):] == name {
			return err
		}
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) PublicURL(key string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://cdn.example.com/project-images/" + key, nil
}

func (f *fakeStore) Bucket() string { return "project-images" }

type failingRepo struct{ err error }

func (r failingRepo) Insert(ctx context.Context, record Record) (int64, error) {
	return 0, r.err
}

func fixedNow() time.Time { return time.UnixMilli(1700000000000) }

func attachment(name string) intake.Attachment {
	return intake.Attachment{Name: name, MimeType: "image/png", Data: []byte("png:" + name)}
}

func attachments(prefix string, n int) []intake.Attachment {
	out := make([]intake.Attachment, n)
	for i := range out {
		out[i] = attachment(fmt.Sprintf("%s%d.png", prefix, i))
	}
	return out
}

func sampleAnalysis() analysis.AIAnalysis {
	return analysis.AIAnalysis{
		DadosDoFormulario: "dados",
		InterpretacaoImagemAtual: analysis.InterpretacaoImagemAtual{
			FaseExecutiva:      "estrutura",
			MateriaisVisiveis:  "concreto",
			MateriaisProvaveis: "blocos",
		},
		InterpretacaoImagemProjeto: analysis.InterpretacaoImagemProjeto{
			Caracteristicas: "residencial",
			FasesExecutivas: "alvenaria",
		},
		AnaliseAvancoFisico: "no prazo",
		Recomendacoes:       "antecipar pedidos",
	}
}

func sampleForm() intake.FormData {
	return intake.FormData{
		FullName:                     "Maria Souza",
		Email:                        "maria@example.com",
		SuppliesContactName:          "João",
		SuppliesContactPhone:         "(11) 99999-0000",
		ProjectName:                  "Residencial Aurora",
		Address:                      "Rua A, 100",
		City:                         "São Paulo",
		State:                        "SP",
		FloorCount:                   "4",
		StartDate:                    "2025-01-10",
		EndDate:                      "2026-06-30",
		ProjectDescription:           "Prédio residencial.",
		CurrentPhaseDescription:      "Estrutura.",
		MaterialManagementDifficulty: "Cimento atrasado.",
		CurrentSituationImages:       attachments("atual", 2),
		FinalProjectImages:           attachments("final", 1),
	}
}
