package analysis

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
)

// PromptVersion identifies the embedded template.
const PromptVersion = "v1"

//go:embed prompts/analysis_v1.txt
var promptTemplate string

const (
	noCurrentImages = "Nenhuma imagem da situação atual foi fornecida.\n"
	noFinalImages   = "Nenhuma imagem do projeto finalizado foi fornecida.\n"
)

// RenderPrompt fills the template with the form values and image counts.
func RenderPrompt(form intake.FormData, currentCount, finalCount int) string {
	currentNote, finalNote := "", ""
	if currentCount == 0 {
		currentNote = noCurrentImages
	}
	if finalCount == 0 {
		finalNote = noFinalImages
	}
	r := strings.NewReplacer(
		"{{projectName}}", form.ProjectName,
		"{{floorCount}}", form.FloorCount,
		"{{projectDescription}}", form.ProjectDescription,
		"{{currentPhaseDescription}}", form.CurrentPhaseDescription,
		"{{materialManagementDifficulty}}", form.MaterialManagementDifficulty,
		"{{currentCount}}", strconv.Itoa(currentCount),
		"{{finalCount}}", strconv.Itoa(finalCount),
		"{{currentNote}}\n", currentNote,
		"{{finalNote}}\n", finalNote,
	)
	return r.Replace(promptTemplate)
}
