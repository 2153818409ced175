package analysis

import "github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm"

func str(description string) *llm.Schema {
	return &llm.Schema{Type: llm.TypeString, Description: description}
}

// AnalysisSchema is the response schema sent with every analysis request.
func AnalysisSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"dadosDoFormulario": str("Resumo dos insumos disponíveis, materiais críticos e prazos de reposição, baseado nos dados do formulário."),
			"interpretacaoImagemAtual": {
				Type: llm.TypeObject,
				Properties: map[string]*llm.Schema{
					"faseExecutiva":      str("Identificação da fase executiva da obra com base na imagem atual."),
					"materiaisVisiveis":  str("Lista dos principais materiais visíveis em uso na imagem atual."),
					"materiaisProvaveis": str("Projeção dos próximos insumos a serem aplicados, com base na fase atual."),
				},
				Required: []string{"faseExecutiva", "materiaisVisiveis", "materiaisProvaveis"},
			},
			"interpretacaoImagemProjeto": {
				Type: llm.TypeObject,
				Properties: map[string]*llm.Schema{
					"caracteristicas": str("Descrição do tipo de construção (residencial, comercial, etc.) e quantidade de pavimentos, com base na imagem do projeto final."),
					"fasesExecutivas": str("Lista das principais etapas executivas previstas no projeto."),
				},
				Required: []string{"caracteristicas", "fasesExecutivas"},
			},
			"analiseAvancoFisico": str("Análise comparativa entre o planejamento (dados do formulário, projeto final) e o progresso real (imagem atual), focando na gestão de materiais e almoxarifado."),
			"recomendacoes":       str("Insights e recomendações práticas para otimização do almoxarifado, gestão de estoque e continuidade da obra."),
		},
		Required: []string{
			"dadosDoFormulario",
			"interpretacaoImagemAtual",
			"interpretacaoImagemProjeto",
			"analiseAvancoFisico",
			"recomendacoes",
		},
	}
}
