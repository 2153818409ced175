package intake

import "regexp"

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var requiredMessages = map[Field]string{
	FieldFullName:                     "Nome completo é obrigatório.",
	FieldEmail:                        "E-mail é obrigatório.",
	FieldSuppliesContactName:          "Nome do contato é obrigatório.",
	FieldSuppliesContactPhone:         "Telefone do contato é obrigatório.",
	FieldProjectName:                  "Nome do projeto é obrigatório.",
	FieldAddress:                      "Endereço é obrigatório.",
	FieldCity:                         "Cidade é obrigatória.",
	FieldState:                        "Estado é obrigatório.",
	FieldFloorCount:                   "Número de pavimentos é obrigatório.",
	FieldStartDate:                    "Data de início é obrigatória.",
	FieldEndDate:                      "Data de término é obrigatória.",
	FieldProjectDescription:           "Descrição do projeto é obrigatória.",
	FieldCurrentPhaseDescription:      "Descrição da fase atual é obrigatória.",
	FieldMaterialManagementDifficulty: "Descrição das dificuldades é obrigatória.",
	FieldCurrentSituationImage:        "Pelo menos uma imagem da situação atual é obrigatória.",
}

const (
	invalidEmailMessage = "Formato de e-mail inválido."
	invalidStateMessage = "Estado inválido."
)

// Validate checks the form and returns one message per failing field.
// Whitespace-only values count as empty. There are no cross-field checks.
func Validate(d FormData) ValidationErrors {
	errs := ValidationErrors{}
	for _, f := range ScalarFields {
		if trimmed(d.Value(f)) == "" {
			errs[f] = requiredMessages[f]
		}
	}
	if _, missing := errs[FieldEmail]; !missing && !emailPattern.MatchString(d.Email) {
		errs[FieldEmail] = invalidEmailMessage
	}
	if _, missing := errs[FieldState]; !missing && !IsBrazilianState(trimmed(d.State)) {
		errs[FieldState] = invalidStateMessage
	}
	if len(d.CurrentSituationImages) == 0 {
		errs[FieldCurrentSituationImage] = requiredMessages[FieldCurrentSituationImage]
	}
	return errs
}
