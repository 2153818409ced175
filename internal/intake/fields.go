package intake

// Field names a form input. The values double as HTML input names, multipart
// part names and ValidationErrors keys.
type Field string

const (
	FieldFullName                     Field = "fullName"
	FieldEmail                        Field = "email"
	FieldSuppliesContactName          Field = "suppliesContactName"
	FieldSuppliesContactPhone         Field = "suppliesContactPhone"
	FieldProjectName                  Field = "projectName"
	FieldAddress                      Field = "address"
	FieldCity                         Field = "city"
	FieldState                        Field = "state"
	FieldFloorCount                   Field = "floorCount"
	FieldStartDate                    Field = "startDate"
	FieldEndDate                      Field = "endDate"
	FieldProjectDescription           Field = "projectDescription"
	FieldCurrentPhaseDescription      Field = "currentPhaseDescription"
	FieldMaterialManagementDifficulty Field = "materialManagementDifficulty"
	FieldCurrentSituationImage        Field = "currentSituationImage"
	FieldFinalProjectImage            Field = "finalProjectImage"
)

// ScalarFields lists the text fields in form order.
var ScalarFields = []Field{
	FieldFullName,
	FieldEmail,
	FieldSuppliesContactName,
	FieldSuppliesContactPhone,
	FieldProjectName,
	FieldAddress,
	FieldCity,
	FieldState,
	FieldFloorCount,
	FieldStartDate,
	FieldEndDate,
	FieldProjectDescription,
	FieldCurrentPhaseDescription,
	FieldMaterialManagementDifficulty,
}

// Sequence identifies one of the two ordered image lists.
type Sequence string

const (
	SequenceCurrentSituation Sequence = Sequence(FieldCurrentSituationImage)
	SequenceFinalProject     Sequence = Sequence(FieldFinalProjectImage)
)

// Sequences lists both image sequences in submission order.
var Sequences = []Sequence{SequenceCurrentSituation, SequenceFinalProject}

// MaxAttachments caps each sequence.
const MaxAttachments = 5

// Field returns the form field backing the sequence.
func (s Sequence) Field() Field { return Field(s) }

// Valid reports whether s names a known sequence.
func (s Sequence) Valid() bool {
	return s == SequenceCurrentSituation || s == SequenceFinalProject
}
