package intake

import "strings"

// Attachment is a user-selected image held in memory until submission.
type Attachment struct {
	Name     string
	MimeType string
	Data     []byte
}

// FormData is the raw, user-entered form. All scalars are kept as text;
// FloorCount is parsed only when a record is persisted.
type FormData struct {
	FullName                     string
	Email                        string
	SuppliesContactName          string
	SuppliesContactPhone         string
	ProjectName                  string
	Address                      string
	City                         string
	State                        string
	FloorCount                   string
	StartDate                    string
	EndDate                      string
	ProjectDescription           string
	CurrentPhaseDescription      string
	MaterialManagementDifficulty string

	CurrentSituationImages []Attachment
	FinalProjectImages     []Attachment
}

// Value returns the text of a scalar field, or "" for anything else.
func (d FormData) Value(f Field) string {
	if p := d.scalar(f); p != nil {
		return *p
	}
	return ""
}

// Attachments returns the attachments of seq.
func (d FormData) Attachments(seq Sequence) []Attachment {
	switch seq {
	case SequenceCurrentSituation:
		return d.CurrentSituationImages
	case SequenceFinalProject:
		return d.FinalProjectImages
	default:
		return nil
	}
}

func (d *FormData) scalar(f Field) *string {
	switch f {
	case FieldFullName:
		return &d.FullName
	case FieldEmail:
		return &d.Email
	case FieldSuppliesContactName:
		return &d.SuppliesContactName
	case FieldSuppliesContactPhone:
		return &d.SuppliesContactPhone
	case FieldProjectName:
		return &d.ProjectName
	case FieldAddress:
		return &d.Address
	case FieldCity:
		return &d.City
	case FieldState:
		return &d.State
	case FieldFloorCount:
		return &d.FloorCount
	case FieldStartDate:
		return &d.StartDate
	case FieldEndDate:
		return &d.EndDate
	case FieldProjectDescription:
		return &d.ProjectDescription
	case FieldCurrentPhaseDescription:
		return &d.CurrentPhaseDescription
	case FieldMaterialManagementDifficulty:
		return &d.MaterialManagementDifficulty
	default:
		return nil
	}
}

func (d *FormData) attachments(seq Sequence) *[]Attachment {
	switch seq {
	case SequenceCurrentSituation:
		return &d.CurrentSituationImages
	case SequenceFinalProject:
		return &d.FinalProjectImages
	default:
		return nil
	}
}

// Clone returns a deep copy. Attachment bytes are shared since they are never mutated.
func (d FormData) Clone() FormData {
	out := d
	out.CurrentSituationImages = append([]Attachment(nil), d.CurrentSituationImages...)
	out.FinalProjectImages = append([]Attachment(nil), d.FinalProjectImages...)
	return out
}

// FormState is the editable form plus the errors from the last validation.
type FormState struct {
	Data   FormData
	Errors ValidationErrors
}

// NewFormState returns an empty form.
func NewFormState() *FormState {
	return &FormState{Errors: ValidationErrors{}}
}

// SetField stores value and clears any error shown for that field.
func (s *FormState) SetField(f Field, value string) error {
	p := s.Data.scalar(f)
	if p == nil {
		return ErrUnknownField
	}
	*p = value
	s.clearError(f)
	return nil
}

// AddAttachments appends files to seq and keeps the first MaxAttachments.
// It returns how many of the given files were kept.
func (s *FormState) AddAttachments(seq Sequence, files ...Attachment) (int, error) {
	list := s.Data.attachments(seq)
	if list == nil {
		return 0, ErrUnknownSequence
	}
	before := len(*list)
	merged := make([]Attachment, 0, before+len(files))
	merged = append(merged, *list...)
	merged = append(merged, files...)
	if len(merged) > MaxAttachments {
		merged = merged[:MaxAttachments]
	}
	*list = merged
	if len(files) > 0 {
		s.clearError(seq.Field())
	}
	return len(merged) - before, nil
}

// RemoveAttachment drops the attachment at index i, keeping the others in order.
func (s *FormState) RemoveAttachment(seq Sequence, i int) error {
	list := s.Data.attachments(seq)
	if list == nil {
		return ErrUnknownSequence
	}
	if i < 0 || i >= len(*list) {
		return ErrAttachmentIndex
	}
	out := make([]Attachment, 0, len(*list)-1)
	out = append(out, (*list)[:i]...)
	out = append(out, (*list)[i+1:]...)
	*list = out
	return nil
}

// SetErrors replaces the displayed errors.
func (s *FormState) SetErrors(errs ValidationErrors) {
	if errs == nil {
		errs = ValidationErrors{}
	}
	s.Errors = errs
}

// Snapshot returns an independent copy of the form for a submission.
func (s *FormState) Snapshot() FormData {
	return s.Data.Clone()
}

// Reset discards all values, attachments and errors.
func (s *FormState) Reset() {
	*s = FormState{Errors: ValidationErrors{}}
}

// Full reports whether seq has reached MaxAttachments.
func (s *FormState) Full(seq Sequence) bool {
	return len(s.Data.Attachments(seq)) >= MaxAttachments
}

func (s *FormState) clearError(f Field) {
	if s.Errors != nil {
		delete(s.Errors, f)
	}
}

func trimmed(v string) string {
	return strings.TrimSpace(v)
}
