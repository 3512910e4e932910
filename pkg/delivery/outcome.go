package delivery

// OutcomeKind is the result of one delivery attempt.
type OutcomeKind int

const (
	NothingToCopy OutcomeKind = iota
	ClipboardSuccess
	ClipboardFailedSaved
	ClipboardFailedCancelled
)

func (k OutcomeKind) String() string {
	switch k {
	case NothingToCopy:
		return "nothing-to-copy"
	case ClipboardSuccess:
		return "clipboard-success"
	case ClipboardFailedSaved:
		return "clipboard-failed-saved"
	case ClipboardFailedCancelled:
		return "clipboard-failed-cancelled"
	default:
		return "unknown"
	}
}

// FailureReason says why the clipboard copy was rejected.
type FailureReason int

const (
	NoFailure FailureReason = iota
	ClipboardWriteFailure
	ClipboardTruncated
)

func (r FailureReason) String() string {
	switch r {
	case NoFailure:
		return "none"
	case ClipboardWriteFailure:
		return "clipboard write failed"
	case ClipboardTruncated:
		return "clipboard content was truncated"
	default:
		return "unknown"
	}
}

// Outcome carries what happened to a payload and the metrics to report.
type Outcome struct {
	Kind      OutcomeKind
	Reason    FailureReason
	Cause     error  // Underlying clipboard error, if any.
	SavedPath string // Set for ClipboardFailedSaved.
	Files     int
	Lines     int
	Bytes     int
	Paths     []string
}

// Succeeded reports whether the payload reached the clipboard or a file.
func (o Outcome) Succeeded() bool {
	return o.Kind == ClipboardSuccess || o.Kind == ClipboardFailedSaved
}
