package engine

import "fmt"

// FormatReport renders a rover state in the operator display form
// "(x, y, H)", followed by " LOST" when the rover has left the grid.
func FormatReport(state RoverState) string {
	if state.Lost {
		return fmt.Sprintf("(%d, %d, %s) LOST", state.X, state.Y, state.Heading)
	}
	return fmt.Sprintf("(%d, %d, %s)", state.X, state.Y, state.Heading)
}

// Report renders the state in its operator display form
func (s RoverState) Report() string {
	return FormatReport(s)
}
