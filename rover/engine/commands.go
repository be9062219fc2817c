package engine

import "fmt"

// UnsupportedActionError reports a command character outside {'F','L','R'}.
// Position is the zero-based index of the character in the input string, or
// -1 when a single character was decoded on its own.
type UnsupportedActionError struct {
	Char     rune
	Position int
}

func (e *UnsupportedActionError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("unsupported action %q at position %d", e.Char, e.Position)
	}
	return fmt.Sprintf("unsupported action %q", e.Char)
}

// DecodeAction maps one command character to an Action. Characters outside
// {'F','L','R'} return an UnsupportedActionError instead of a default Action.
func DecodeAction(c rune) (Action, error) {
	switch c {
	case 'F':
		return Forward, nil
	case 'L':
		return RotateLeft, nil
	case 'R':
		return RotateRight, nil
	}
	return "", &UnsupportedActionError{Char: c, Position: -1}
}

// DecodeCommands converts a raw command string into an ordered action
// sequence. It fails fast: the first unsupported character aborts the whole
// conversion and nothing is dispatched, so a single bad character can never
// silently degrade a run.
func DecodeCommands(commands string) ([]Action, error) {
	actions := make([]Action, 0, len(commands))
	for i, c := range commands {
		action, err := DecodeAction(c)
		if err != nil {
			return nil, &UnsupportedActionError{Char: c, Position: i}
		}
		actions = append(actions, action)
	}
	return actions, nil
}
