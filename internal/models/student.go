package models

// Student represents one enrolled person in the roster.
type Student struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}
