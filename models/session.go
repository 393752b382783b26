package models

// CurrentUser is the serialized user object kept in the session tiers.
type CurrentUser struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is a read view over the persisted authentication state.
type Session struct {
	Token     string       `json:"-"`
	UserID    ID           `json:"userId,omitempty"`
	Role      string       `json:"role,omitempty"`
	PatientID ID           `json:"patientId,omitempty"`
	DoctorID  ID           `json:"doctorId,omitempty"`
	User      *CurrentUser `json:"currentUser,omitempty"`
}

// Authenticated holds only when both token and role are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Role != ""
}
