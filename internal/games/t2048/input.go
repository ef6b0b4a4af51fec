package t2048

import "github.com/vovakirdan/tui-2048/internal/core"

// stepPriority is the order in which Step picks an action from a frame.
var stepPriority = [...]core.Action{
	core.ActionRestart,
	core.ActionKeepPlaying,
	core.ActionUp,
	core.ActionRight,
	core.ActionDown,
	core.ActionLeft,
}

// DirectionFor maps a directional action to a Direction.
func DirectionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionRight:
		return DirRight, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	default:
		return 0, false
	}
}

// Dispatch applies a single action. It returns false for actions the game
// does not handle and for actions that changed nothing.
func (m *Manager) Dispatch(a core.Action) bool {
	if dir, ok := DirectionFor(a); ok {
		return m.Move(dir)
	}
	switch a {
	case core.ActionRestart:
		m.Restart()
		return true
	case core.ActionKeepPlaying:
		return m.KeepPlaying()
	default:
		return false
	}
}

// Step dispatches at most one action from the frame, so that holding several
// keys in one tick still counts as a single gesture.
func (m *Manager) Step(in core.InputFrame) bool {
	for _, a := range stepPriority {
		if in.Has(a) {
			return m.Dispatch(a)
		}
	}
	return false
}
