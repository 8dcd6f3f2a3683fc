package models

import "fmt"

// Degree represents a degree programme owning zero or more courses
type Degree struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Relations (populated when needed)
	Courses []*Course `json:"courses,omitempty"`
}

func (d Degree) String() string {
	return fmt.Sprintf("Id: %d, Name: %s", d.ID, d.Name)
}
