package models

import "fmt"

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	FirstName string `json:"firstName" db:"first_name" example:"Mario"`
	LastName  string `json:"lastName" db:"last_name" example:"Rossi"`
}

// FullName returns "first last".
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func (s Student) String() string {
	return fmt.Sprintf("{ Id = %d, FirstName = %s, LastName = %s }", s.ID, s.FirstName, s.LastName)
}
