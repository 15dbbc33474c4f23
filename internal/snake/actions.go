package snake

import "github.com/vovakirdan/tui-snake/internal/core"

var actionDirections = map[core.Action]Direction{
	core.ActionUp:    DirUp,
	core.ActionDown:  DirDown,
	core.ActionLeft:  DirLeft,
	core.ActionRight: DirRight,
}

// DirectionFor returns the direction a steering action asks for.
func DirectionFor(a core.Action) (Direction, bool) {
	d, ok := actionDirections[a]
	return d, ok
}

// Handle applies a platform action to the session. Keyboards, D-pads and the
// HTTP API all funnel through here. It reports whether the action was one the
// game understands; Back, Quit and Screenshot are left to the platform.
func (s *Session) Handle(a core.Action) bool {
	if a.IsMove() {
		d, _ := DirectionFor(a)
		s.SetDirection(d)
		return true
	}

	switch a {
	case core.ActionStart:
		switch s.Phase() {
		case PhaseIdle:
			s.Start()
		case PhaseOver:
			s.Restart()
		case PhaseRunning:
			if s.Paused() {
				s.Resume()
			}
		}
		return true
	case core.ActionRestart:
		s.Restart()
		return true
	case core.ActionPause:
		s.TogglePause()
		return true
	}
	return false
}
