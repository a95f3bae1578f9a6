package responses

import "time"

type Login struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	SubjectID string    `json:"subject_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
