package models

type Patient struct {
	ID         ID     `json:"patientId"`
	Name       string `json:"patientName"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Gender     string `json:"gender,omitempty"`
	BloodGroup string `json:"bloodGroup,omitempty"`
	Age        int    `json:"age,omitempty"`
}
