package core

type CallState int

const (
	CallStateUnknown CallState = iota
	CallStateExecuting
	CallStateExecutingFailed
	// statement was submitted, waiting for the first row of the job
	CallStateAwaiting
	CallStateRetrieving
	CallStateRetrievingFailed
	CallStateArchived
	CallStateArchiveFailed
	CallStateCanceled
)

var callStateNames = map[CallState]string{
	CallStateUnknown:          "unknown",
	CallStateExecuting:        "executing",
	CallStateExecutingFailed:  "executing_failed",
	CallStateAwaiting:         "awaiting",
	CallStateRetrieving:       "retrieving",
	CallStateRetrievingFailed: "retrieving_failed",
	CallStateArchived:         "archived",
	CallStateArchiveFailed:    "archive_failed",
	CallStateCanceled:         "canceled",
}

func CallStateFromString(s string) CallState {
	for state, name := range callStateNames {
		if name == s {
			return state
		}
	}
	return CallStateUnknown
}

func (s CallState) String() string {
	name, ok := callStateNames[s]
	if !ok {
		return callStateNames[CallStateUnknown]
	}
	return name
}

// IsFinal reports whether the call can't change its state anymore.
func (s CallState) IsFinal() bool {
	switch s {
	case CallStateExecutingFailed,
		CallStateRetrievingFailed,
		CallStateArchived,
		CallStateArchiveFailed,
		CallStateCanceled:
		return true
	default:
		return false
	}
}
