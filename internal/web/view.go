package web

import (
	"strconv"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
)

type fieldView struct {
	Name        string
	Label       string
	Kind        string
	Type        string
	Placeholder string
	Wide        bool
	Value       string
	Error       string
	Options     []intake.BrazilianState
}

type fieldsetView struct {
	Legend string
	Fields []fieldView
}

type previewView struct {
	URL       string
	RemoveURL string
	Number    int
}

type sequenceView struct {
	Name     string
	Label    string
	Required bool
	Full     bool
	Prompt   string
	Error    string
	Previews []previewView
}

type formPage struct {
	Fieldsets  []fieldsetView
	Media      []sequenceView
	FormError  string
	Submitting bool
	Accept     string
}

type fieldSpec struct {
	field       intake.Field
	label       string
	kind        string
	inputType   string
	placeholder string
	wide        bool
}

var fieldsets = []struct {
	legend string
	fields []fieldSpec
}{
	{"Informações de Contato", []fieldSpec{
		{field: intake.FieldFullName, label: "Nome Completo", kind: "input", inputType: "text"},
		{field: intake.FieldEmail, label: "E-mail", kind: "input", inputType: "email"},
		{field: intake.FieldSuppliesContactName, label: "Nome do Contato (Suprimentos)", kind: "input", inputType: "text"},
		{field: intake.FieldSuppliesContactPhone, label: "Telefone do Contato (Suprimentos)", kind: "input", inputType: "tel"},
	}},
	{"Detalhes do Projeto", []fieldSpec{
		{field: intake.FieldProjectName, label: "Nome do Projeto", kind: "input", inputType: "text", wide: true},
		{field: intake.FieldAddress, label: "Endereço Completo da Obra", kind: "input", inputType: "text", wide: true},
		{field: intake.FieldCity, label: "Cidade", kind: "input", inputType: "text"},
		{field: intake.FieldState, label: "Estado", kind: "select"},
		{field: intake.FieldFloorCount, label: "Número de Pavimentos", kind: "input", inputType: "number"},
		{field: intake.FieldStartDate, label: "Data de Início", kind: "input", inputType: "date"},
		{field: intake.FieldEndDate, label: "Data de Término Prevista", kind: "input", inputType: "date"},
	}},
	{"Descrição e Status", []fieldSpec{
		{field: intake.FieldProjectDescription, label: "Descrição Detalhada do Projeto", kind: "textarea",
			placeholder: "Descreva os objetivos, escopo e principais características da construção."},
		{field: intake.FieldCurrentPhaseDescription, label: "Descrição da Fase Atual", kind: "textarea",
			placeholder: "Se souber, descreva em que pé está a obra (ex: fundação, alvenaria, acabamento)."},
		{field: intake.FieldMaterialManagementDifficulty, label: "Dificuldades com Gestão de Materiais", kind: "textarea",
			placeholder: "Descreva qualquer desafio logístico, de armazenamento ou de fornecimento que esteja enfrentando."},
	}},
}

var mediaLabels = map[intake.Sequence]struct {
	label    string
	required bool
}{
	intake.SequenceCurrentSituation: {"Imagens da Situação Atual (Máx 5)", true},
	intake.SequenceFinalProject:     {"Imagens do Projeto Finalizado (Opcional)", false},
}

const (
	uploadPrompt       = "Clique para adicionar imagens"
	uploadLimitReached = "Limite de 5 imagens atingido"
	acceptedTypes      = "image/png, image/jpeg, image/jpg"
)

// buildFormPage renders the session state; sess.mu must be held.
func buildFormPage(sess *Session) formPage {
	data := sess.form.Data
	errs := sess.form.Errors

	page := formPage{
		FormError:  sess.formError,
		Submitting: sess.submitting,
		Accept:     acceptedTypes,
	}
	for _, fs := range fieldsets {
		view := fieldsetView{Legend: fs.legend}
		for _, def := range fs.fields {
			fv := fieldView{
				Name:        string(def.field),
				Label:       def.label,
				Kind:        def.kind,
				Type:        def.inputType,
				Placeholder: def.placeholder,
				Wide:        def.wide,
				Value:       data.Value(def.field),
				Error:       errs[def.field],
			}
			if def.kind == "select" {
				fv.Options = intake.BrazilianStates
			}
			view.Fields = append(view.Fields, fv)
		}
		page.Fieldsets = append(page.Fieldsets, view)
	}

	for _, seq := range intake.Sequences {
		meta := mediaLabels[seq]
		full := sess.form.Full(seq)
		sv := sequenceView{
			Name:     string(seq),
			Label:    meta.label,
			Required: meta.required,
			Full:     full,
			Prompt:   uploadPrompt,
			Error:    errs[seq.Field()],
		}
		if full {
			sv.Prompt = uploadLimitReached
		}
		for i, token := range sess.previews[seq] {
			sv.Previews = append(sv.Previews, previewView{
				URL:       "/previews/" + token,
				RemoveURL: "/form/images/" + string(seq) + "/" + strconv.Itoa(i) + "/remove",
				Number:    i + 1,
			})
		}
		page.Media = append(page.Media, sv)
	}
	return page
}
