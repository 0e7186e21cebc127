package models

// UnknownCourseName is the fallback label used when a task references a
// course that no longer exists. Dangling references are tolerated, not errors.
const UnknownCourseName = "Unknown Course"

type Course struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Color      string `json:"color,omitempty"`
}
