package projects

import (
	"strconv"
	"strings"
	"time"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
)

// Record is one row of cadastro_obra.
type Record struct {
	FullName                     string
	Email                        string
	SuppliesContactName          string
	SuppliesContactPhone         string
	ProjectName                  string
	Address                      string
	City                         string
	State                        string
	FloorCount                   int
	StartDate                    string
	EndDate                      string
	ProjectDescription           string
	CurrentPhaseDescription      string
	MaterialManagementDifficulty string
	CurrentSituationImageURLs    []string
	FinalProjectImageURLs        []string
	Analysis                     analysis.AIAnalysis
	CreatedAt                    time.Time
}

// ParseFloorCount reads the floor count as a base-10 integer.
func ParseFloorCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidFloorCount
	}
	return n, nil
}

func newRecord(form intake.FormData, floors int, current, final []string, result analysis.AIAnalysis) Record {
	if current == nil {
		current = []string{}
	}
	if final == nil {
		final = []string{}
	}
	return Record{
		FullName:                     form.FullName,
		Email:                        form.Email,
		SuppliesContactName:          form.SuppliesContactName,
		SuppliesContactPhone:         form.SuppliesContactPhone,
		ProjectName:                  form.ProjectName,
		Address:                      form.Address,
		City:                         form.City,
		State:                        form.State,
		FloorCount:                   floors,
		StartDate:                    form.StartDate,
		EndDate:                      form.EndDate,
		ProjectDescription:           form.ProjectDescription,
		CurrentPhaseDescription:      form.CurrentPhaseDescription,
		MaterialManagementDifficulty: form.MaterialManagementDifficulty,
		CurrentSituationImageURLs:    current,
		FinalProjectImageURLs:        final,
		Analysis:                     result,
	}
}
