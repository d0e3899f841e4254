package pagination

import "fmt"

// Direction is the traversal order of a page request
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// ParseDirection maps the query value to a Direction; empty means Forward
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Forward:
		return Forward, nil
	case Backward:
		return Backward, nil
	default:
		return "", fmt.Errorf("unknown direction %q, expected one of %v", s, []Direction{Forward, Backward})
	}
}
