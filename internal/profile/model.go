package profile

// UpdateProfileRequest is the request body for a self-profile update. Course
// only applies when the user owns a student record.
type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Course string `json:"course"`
}
