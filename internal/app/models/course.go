package models

import "fmt"

// Course represents a course, optionally belonging to a degree.
type Course struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	DegreeID *int64 `json:"degreeId,omitempty" db:"degree_id"` // Nullable

	// Relations (populated when needed)
	Degree *Degree `json:"degree,omitempty"`
}

func (c Course) String() string {
	return fmt.Sprintf("{ Id = %d, Name = %s }", c.ID, c.Name)
}
