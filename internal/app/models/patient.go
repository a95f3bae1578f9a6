package models

type Patient struct {
	ID       string  `json:"_id" bson:"_id,omitempty"`
	Name     string  `json:"name" bson:"name"`
	Email    string  `json:"email" bson:"email"`
	Password string  `json:"-" bson:"password"`
	Image    string  `json:"image" bson:"image"`
	Phone    string  `json:"phone" bson:"phone"`
	Address  Address `json:"address" bson:"address"`
	Gender   string  `json:"gender" bson:"gender"`
	Dob      string  `json:"dob" bson:"dob"`
}

type PatientSnapshot struct {
	ID      string  `json:"_id" bson:"_id"`
	Name    string  `json:"name" bson:"name"`
	Email   string  `json:"email" bson:"email"`
	Image   string  `json:"image" bson:"image"`
	Phone   string  `json:"phone" bson:"phone"`
	Address Address `json:"address" bson:"address"`
	Gender  string  `json:"gender" bson:"gender"`
	Dob     string  `json:"dob" bson:"dob"`
}

func (p *Patient) Snapshot() PatientSnapshot {
	return PatientSnapshot{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Image:   p.Image,
		Phone:   p.Phone,
		Address: p.Address,
		Gender:  p.Gender,
		Dob:     p.Dob,
	}
}
