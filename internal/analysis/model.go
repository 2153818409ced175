package analysis

import (
	"fmt"
	"strings"
)

// AIAnalysis is the structured report returned by the model and stored as-is
// in descricao_ia_fase_obra.
type AIAnalysis struct {
	DadosDoFormulario          string                     `json:"dadosDoFormulario"`
	InterpretacaoImagemAtual   InterpretacaoImagemAtual   `json:"interpretacaoImagemAtual"`
	InterpretacaoImagemProjeto InterpretacaoImagemProjeto `json:"interpretacaoImagemProjeto"`
	AnaliseAvancoFisico        string                     `json:"analiseAvancoFisico"`
	Recomendacoes              string                     `json:"recomendacoes"`
}

type InterpretacaoImagemAtual struct {
	FaseExecutiva      string `json:"faseExecutiva"`
	MateriaisVisiveis  string `json:"materiaisVisiveis"`
	MateriaisProvaveis string `json:"materiaisProvaveis"`
}

type InterpretacaoImagemProjeto struct {
	Caracteristicas string `json:"caracteristicas"`
	FasesExecutivas string `json:"fasesExecutivas"`
}

// Validate reports the first field that is missing or blank.
func (a AIAnalysis) Validate() error {
	checks := []struct {
		path  string
		value string
	}{
		{"dadosDoFormulario", a.DadosDoFormulario},
		{"interpretacaoImagemAtual.faseExecutiva", a.InterpretacaoImagemAtual.FaseExecutiva},
		{"interpretacaoImagemAtual.materiaisVisiveis", a.InterpretacaoImagemAtual.MateriaisVisiveis},
		{"interpretacaoImagemAtual.materiaisProvaveis", a.InterpretacaoImagemAtual.MateriaisProvaveis},
		{"interpretacaoImagemProjeto.caracteristicas", a.InterpretacaoImagemProjeto.Caracteristicas},
		{"interpretacaoImagemProjeto.fasesExecutivas", a.InterpretacaoImagemProjeto.FasesExecutivas},
		{"analiseAvancoFisico", a.AnaliseAvancoFisico},
		{"recomendacoes", a.Recomendacoes},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, c.path)
		}
	}
	return nil
}
