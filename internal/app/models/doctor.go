package models

type Address struct {
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2" bson:"line2"`
}

// SlotsBooked maps a date key (<year>_<monthIndex0based>_<day>) to the time labels
// already reserved on that date, in booking order.
type SlotsBooked map[string][]string

// Clone returns a deep copy so a ledger mutation can be discarded on failure.
func (s SlotsBooked) Clone() SlotsBooked {
	cloned := make(SlotsBooked, len(s))
	for dateKey, labels := range s {
		copied := make([]string, len(labels))
		copy(copied, labels)
		cloned[dateKey] = copied
	}
	return cloned
}

// Equal reports whether both maps hold the same labels in the same order.
func (s SlotsBooked) Equal(other SlotsBooked) bool {
	if len(s) != len(other) {
		return false
	}
	for dateKey, labels := range s {
		otherLabels, ok := other[dateKey]
		if !ok || len(labels) != len(otherLabels) {
			return false
		}
		for i := range labels {
			if labels[i] != otherLabels[i] {
				return false
			}
		}
	}
	return true
}

type Doctor struct {
	ID          string      `json:"_id" bson:"_id,omitempty"`
	Name        string      `json:"name" bson:"name"`
	Email       string      `json:"email" bson:"email"`
	Password    string      `json:"-" bson:"password"`
	Image       string      `json:"image" bson:"image"`
	Speciality  string      `json:"speciality" bson:"speciality"`
	Degree      string      `json:"degree" bson:"degree"`
	Experience  string      `json:"experience" bson:"experience"`
	About       string      `json:"about" bson:"about"`
	Fees        int64       `json:"fees" bson:"fees"`
	Address     Address     `json:"address" bson:"address"`
	Available   bool        `json:"available" bson:"available"`
	IsApproved  bool        `json:"isApproved" bson:"isApproved"`
	SlotsBooked SlotsBooked `json:"slots_booked" bson:"slots_booked"`
	Version     int64       `json:"-" bson:"version"`
	Date        int64       `json:"date" bson:"date"`
}

// DoctorSnapshot is the copy of a doctor's profile frozen into an appointment at booking time.
type DoctorSnapshot struct {
	ID         string  `json:"_id" bson:"_id"`
	Name       string  `json:"name" bson:"name"`
	Email      string  `json:"email" bson:"email"`
	Image      string  `json:"image" bson:"image"`
	Speciality string  `json:"speciality" bson:"speciality"`
	Degree     string  `json:"degree" bson:"degree"`
	Experience string  `json:"experience" bson:"experience"`
	About      string  `json:"about" bson:"about"`
	Fees       int64   `json:"fees" bson:"fees"`
	Address    Address `json:"address" bson:"address"`
}

func (d *Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
		Fees:       d.Fees,
		Address:    d.Address,
	}
}

// Bookable reports whether public listings and the booking flow may use this doctor.
func (d *Doctor) Bookable() bool {
	return d.IsApproved
}
