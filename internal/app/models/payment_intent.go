package models

import (
	"medibook-service/internal/pkg/constvars"
	"time"
)

// PaymentIntent is the server-side record of the correlation token handed out at
// payment initiation.
type PaymentIntent struct {
	ID            string                        `json:"_id" bson:"_id,omitempty"`
	Token         string                        `json:"token" bson:"token"`
	Provider      string                        `json:"provider" bson:"provider"`
	AppointmentID string                        `json:"appointmentId" bson:"appointmentId"`
	Amount        int64                         `json:"amount" bson:"amount"`
	Status        constvars.PaymentIntentStatus `json:"status" bson:"status"`
	LastCheckedAt *time.Time                    `json:"lastCheckedAt,omitempty" bson:"lastCheckedAt,omitempty"`
	TimeModel     `bson:",inline"`
}
