package submissions

// State is a step of the submission state machine.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateEncoding   State = "encoding"
	StateAnalyzing  State = "analyzing"
	StatePersisting State = "persisting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Transition renders "from->to" for logs.
func Transition(from, to State) string {
	return string(from) + "->" + string(to)
}
