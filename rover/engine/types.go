package engine

// Heading represents the compass direction the rover is facing
type Heading string

const (
	North Heading = "N"
	East  Heading = "E"
	South Heading = "S"
	West  Heading = "W"
)

// Action represents one atomic rover command
type Action string

const (
	Forward     Action = "F"
	RotateLeft  Action = "L"
	RotateRight Action = "R"

	// Validation constants
	MinEdge             = 0
	MaxEdge             = 1000
	MaxSequenceCommands = 500
)

// GridBounds defines the inclusive rectangle of valid coordinates, anchored
// at the origin: valid x in [0, EdgeX], valid y in [0, EdgeY].
type GridBounds struct {
	EdgeX int `json:"edge_x"`
	EdgeY int `json:"edge_y"`
}

// RoverState is the rover's position and orientation at one instant. It is a
// plain value: transitions build a new RoverState rather than mutating one.
// Once Lost is set, X, Y and Heading stay frozen at the last in-bounds values.
type RoverState struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Heading Heading `json:"heading"`
	Lost    bool    `json:"lost,omitempty"`
}

// MissionConfig represents a mission definition loaded from JSON
type MissionConfig struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	EdgeX        int     `json:"edge_x"`
	EdgeY        int     `json:"edge_y"`
	StartX       int     `json:"start_x"`
	StartY       int     `json:"start_y"`
	StartHeading Heading `json:"start_heading"`
	Messages     struct {
		Deployed  string `json:"deployed"`
		Nominal   string `json:"nominal"`
		RoverLost string `json:"rover_lost"`
	} `json:"messages"`
}

// Bounds returns the grid bounds defined by the mission
func (c *MissionConfig) Bounds() GridBounds {
	return GridBounds{EdgeX: c.EdgeX, EdgeY: c.EdgeY}
}

// CommandLogEntry records a single dispatched command in the mission history
type CommandLogEntry struct {
	Action    Action     `json:"action"`
	From      RoverState `json:"from"`
	To        RoverState `json:"to"`
	Applied   bool       `json:"applied"`
	Timestamp int64      `json:"timestamp"`
	Number    int        `json:"number"`
}
