package requests

type Address struct {
	Line1 string `json:"line1" validate:"max=200"`
	Line2 string `json:"line2" validate:"max=200"`
}

type RegisterDoctor struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Speciality string  `json:"speciality" validate:"required"`
	Degree     string  `json:"degree" validate:"required"`
	Experience string  `json:"experience" validate:"required"`
	About      string  `json:"about" validate:"required"`
	Fees       int64   `json:"fees" validate:"required,gt=0"`
	Address    Address `json:"address"`
	// Image is an optional data URL, e.g. data:image/png;base64,....
	Image string `json:"image"`
}

type UpdateDoctorProfile struct {
	Fees      *int64   `json:"fees" validate:"omitempty,gt=0"`
	About     *string  `json:"about" validate:"omitempty,max=2000"`
	Address   *Address `json:"address"`
	Available *bool    `json:"available"`
}
