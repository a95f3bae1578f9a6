package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/doctors/doctor_a.png", BuildObjectURL("http://localhost:9000/", "doctors", "doctor_a.png"))
	assert.Equal(t, "https://cdn.example.com/doctors/x.jpg", BuildObjectURL("https://cdn.example.com", "doctors", "x.jpg"))
}
