package requests

type InitiatePayment struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
}

// VerifyPayment carries the provider token (pidx or checkout session id) and the
// appointment the client believes it paid for.
type VerifyPayment struct {
	Token         string `json:"token" validate:"required"`
	AppointmentID string `json:"appointmentId"`
}
