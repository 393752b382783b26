package models

import "strings"

// Role is the coarse permission class of an authenticated principal.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// RolePrefix is how the backend encodes roles, e.g. ROLE_ADMIN.
const RolePrefix = "ROLE_"

// Encoded returns the backend form of the role.
func (r Role) Encoded() string {
	return RolePrefix + string(r)
}

// Canonical uppercases a stored or required role string.
func Canonical(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// StripPrefix returns the canonical role without the ROLE_ prefix.
func StripPrefix(role string) string {
	return strings.TrimPrefix(Canonical(role), RolePrefix)
}
