package history

// TransitionKind identifies the history transition a hook observes.
type TransitionKind int

const (
	// TransitionUndo is a step backward through history.
	TransitionUndo TransitionKind = iota

	// TransitionRedo is a step forward through history.
	TransitionRedo

	// TransitionSnapshot is a new state being recorded.
	TransitionSnapshot
)

// String returns the transition name.
func (k TransitionKind) String() string {
	switch k {
	case TransitionUndo:
		return "undo"
	case TransitionRedo:
		return "redo"
	case TransitionSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Hooks observes history transitions. Both methods are invoked
// synchronously, inline with the owning operation; implementations must
// not call back into the Manager.
type Hooks interface {
	BeforeTransition(kind TransitionKind)
	AfterTransition(kind TransitionKind)
}

func invokeBefore(hooks Hooks, kind TransitionKind) {
	if hooks != nil {
		hooks.BeforeTransition(kind)
	}
}

func invokeAfter(hooks Hooks, kind TransitionKind) {
	if hooks != nil {
		hooks.AfterTransition(kind)
	}
}
