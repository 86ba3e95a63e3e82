package moss

import "fmt"

// State is a point in the submission sequence.
type State int

const (
	StateConnected State = iota
	StateOptionsSent
	StateAwaitingLanguageAck
	StateUploading
	StateAwaitingResult
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "Connected"
	case StateOptionsSent:
		return "OptionsSent"
	case StateAwaitingLanguageAck:
		return "AwaitingLanguageAck"
	case StateUploading:
		return "Uploading"
	case StateAwaitingResult:
		return "AwaitingResult"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ProtocolError reports a rejected request, a broken connection, a
// malformed reply or a call made out of sequence.
type ProtocolError struct {
	State   State
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("moss protocol error in state %s: %s: %v", e.State, e.Message, e.Err)
	}
	return fmt.Sprintf("moss protocol error in state %s: %s", e.State, e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
