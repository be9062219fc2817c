package engine

// RotatedRight returns the heading 90 degrees clockwise through the
// N -> E -> S -> W -> N cycle.
func (h Heading) RotatedRight() Heading {
	switch h {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	return h
}

// RotatedLeft returns the heading 90 degrees counter-clockwise. It is the
// exact inverse of RotatedRight.
func (h Heading) RotatedLeft() Heading {
	switch h {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	}
	return h
}

// Delta returns the unit movement for one forward step in this heading
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Valid reports whether h is one of the four compass headings
func (h Heading) Valid() bool {
	switch h {
	case North, East, South, West:
		return true
	}
	return false
}

// outOfRange reports whether a coordinate falls outside [0, edge]
func outOfRange(coordinate, edge int) bool {
	return coordinate < 0 || coordinate > edge
}

// OutOfBounds reports whether the cell (x, y) lies outside the grid
func (g GridBounds) OutOfBounds(x, y int) bool {
	return outOfRange(x, g.EdgeX) || outOfRange(y, g.EdgeY)
}

// advanced returns the candidate state one cell ahead in the current heading.
// No bounds check happens here; heading and lost flag carry over unchanged.
func (s RoverState) advanced() RoverState {
	dx, dy := s.Heading.Delta()
	s.X += dx
	s.Y += dy
	return s
}

// Step applies a single action to a rover state and returns the next state.
//
// A lost state is absorbing: it comes back unchanged for every action.
// Rotations always succeed and never touch position or the lost flag. A
// forward move that would leave the grid returns the pre-move state with
// Lost set - the out-of-bounds coordinates are never stored, so the result
// always carries the last known-good position.
//
// Step is total over valid enum inputs: there is no error path, going out of
// bounds is a modeled outcome.
func Step(grid GridBounds, state RoverState, action Action) RoverState {
	if state.Lost {
		return state
	}

	switch action {
	case RotateLeft:
		state.Heading = state.Heading.RotatedLeft()
		return state
	case RotateRight:
		state.Heading = state.Heading.RotatedRight()
		return state
	case Forward:
		candidate := state.advanced()
		if grid.OutOfBounds(candidate.X, candidate.Y) {
			state.Lost = true
			return state
		}
		return candidate
	}

	return state
}

// Run folds an ordered action sequence over an initial state and returns the
// final state. Before each action it checks whether the accumulated state is
// already lost and stops there, discarding the remaining actions. An empty
// sequence returns the initial state unchanged.
//
// The fold is an explicit loop so stack usage stays constant no matter how
// long the sequence is.
func Run(grid GridBounds, initial RoverState, actions []Action) RoverState {
	state := initial
	for _, action := range actions {
		if state.Lost {
			break
		}
		state = Step(grid, state, action)
	}
	return state
}
