package intake

// BrazilianState is one option of the state select.
type BrazilianState struct {
	UF   string
	Name string
}

// BrazilianStates lists the 26 states and the Federal District in alphabetical order of name.
var BrazilianStates = []BrazilianState{
	{UF: "AC", Name: "Acre"},
	{UF: "AL", Name: "Alagoas"},
	{UF: "AP", Name: "Amapá"},
	{UF: "AM", Name: "Amazonas"},
	{UF: "BA", Name: "Bahia"},
	{UF: "CE", Name: "Ceará"},
	{UF: "DF", Name: "Distrito Federal"},
	{UF: "ES", Name: "Espírito Santo"},
	{UF: "GO", Name: "Goiás"},
	{UF: "MA", Name: "Maranhão"},
	{UF: "MT", Name: "Mato Grosso"},
	{UF: "MS", Name: "Mato Grosso do Sul"},
	{UF: "MG", Name: "Minas Gerais"},
	{UF: "PA", Name: "Pará"},
	{UF: "PB", Name: "Paraíba"},
	{UF: "PR", Name: "Paraná"},
	{UF: "PE", Name: "Pernambuco"},
	{UF: "PI", Name: "Piauí"},
	{UF: "RJ", Name: "Rio de Janeiro"},
	{UF: "RN", Name: "Rio Grande do Norte"},
	{UF: "RS", Name: "Rio Grande do Sul"},
	{UF: "RO", Name: "Rondônia"},
	{UF: "RR", Name: "Roraima"},
	{UF: "SC", Name: "Santa Catarina"},
	{UF: "SP", Name: "São Paulo"},
	{UF: "SE", Name: "Sergipe"},
	{UF: "TO", Name: "Tocantins"},
}

var stateByUF = func() map[string]struct{} {
	m := make(map[string]struct{}, len(BrazilianStates))
	for _, s := range BrazilianStates {
		m[s.UF] = struct{}{}
	}
	return m
}()

// IsBrazilianState reports whether uf is one of the select options.
func IsBrazilianState(uf string) bool {
	_, ok := stateByUF[uf]
	return ok
}
