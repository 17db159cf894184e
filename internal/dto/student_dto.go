package dto

import "github.com/noah-isme/roster-api/internal/models"

// StudentWriteRequest is the full payload for create and replace. Every field
// is required; pointer fields distinguish "absent" from zero values so that
// false and 0 are still reported as the right violation.
type StudentWriteRequest struct {
	Name     *string `json:"name" validate:"required,min=1"`
	Age      *int    `json:"age" validate:"required,gt=0"`
	Email    *string `json:"email" validate:"required,min=1"`
	IsActive *bool   `json:"isActive" validate:"required"`
}

// StudentPatchRequest carries a partial update. Absent fields leave the
// target record untouched.
type StudentPatchRequest struct {
	Name     *string `json:"name"`
	Age      *int    `json:"age"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"isActive"`
}

// StudentListResponse wraps the full collection with its count.
type StudentListResponse struct {
	Count int              `json:"count"`
	Data  []models.Student `json:"data"`
}
