package state

// FocusState is the derived highlight of a row.
type FocusState int

const (
	FocusNone FocusState = iota
	// FocusShallow marks the cursor row while another node holds focus.
	FocusShallow
	// FocusDeep marks the cursor row while the list itself holds focus.
	FocusDeep
)

func (s FocusState) String() string {
	switch s {
	case FocusShallow:
		return "shallow"
	case FocusDeep:
		return "deep"
	default:
		return "none"
	}
}

// Classify derives the focus state of a row.
func Classify(isCursor, listActive bool) FocusState {
	if !isCursor {
		return FocusNone
	}
	if listActive {
		return FocusDeep
	}
	return FocusShallow
}
