package responses

import "medibook-service/internal/app/models"

// PublicDoctor is the doctor shape exposed to unauthenticated listings.
type PublicDoctor struct {
	ID          string             `json:"_id"`
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	Speciality  string             `json:"speciality"`
	Degree      string             `json:"degree"`
	Experience  string             `json:"experience"`
	About       string             `json:"about"`
	Fees        int64              `json:"fees"`
	Address     models.Address     `json:"address"`
	Available   bool               `json:"available"`
	SlotsBooked models.SlotsBooked `json:"slots_booked"`
}

func NewPublicDoctor(doctor *models.Doctor) PublicDoctor {
	return PublicDoctor{
		ID:          doctor.ID,
		Name:        doctor.Name,
		Image:       doctor.Image,
		Speciality:  doctor.Speciality,
		Degree:      doctor.Degree,
		Experience:  doctor.Experience,
		About:       doctor.About,
		Fees:        doctor.Fees,
		Address:     doctor.Address,
		Available:   doctor.Available,
		SlotsBooked: doctor.SlotsBooked,
	}
}
