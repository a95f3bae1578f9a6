package models

import (
	"medibook-service/internal/pkg/constvars"
	"time"
)

// Session is the verified (role, subjectId) pair attached to a request after login.
type Session struct {
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	SubjectID string    `json:"subjectId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == constvars.RoleAdmin
}

func (s *Session) IsDoctor() bool {
	return s != nil && s.Role == constvars.RoleDoctor
}

func (s *Session) IsPatient() bool {
	return s != nil && s.Role == constvars.RolePatient
}
