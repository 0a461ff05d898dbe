package models

// Data Transfer Objects

type StudentRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
	Grade  *int   `json:"grade"`
}

// Valid reports whether every required field is present and non-empty.
// Grade is checked for presence only; its numeric range is not enforced.
func (r *StudentRequest) Valid() bool {
	return r.Name != "" && r.Email != "" && r.Course != "" && r.Grade != nil
}

// ActionResponse is the uniform envelope returned by the action endpoint.
type ActionResponse struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message,omitempty"`
	Students  []Student          `json:"students,omitempty"`
	Analytics *AnalyticsSnapshot `json:"analytics,omitempty"`
}
