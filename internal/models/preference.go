package models

import "time"

type JobPreference struct {
	ID                 int64     `json:"id,omitempty"`
	Keywords           string    `json:"keywords" validate:"required"`
	LocationType       string    `json:"location_type" validate:"required|in:remote,onsite,hybrid"`
	DesiredLocation    string    `json:"desired_location"`
	ExperienceLevel    string    `json:"experience_level" validate:"in:entry,mid,senior,lead"`
	MinSalary          *int      `json:"min_salary,omitempty"`
	MaxSalary          *int      `json:"max_salary,omitempty"`
	JobType            string    `json:"job_type" validate:"in:full-time,part-time,contract,freelance,internship"`
	IsActive           bool      `json:"is_active"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}
