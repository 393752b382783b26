package guard

import (
	"context"
	"strings"

	"doclink/models"
)

// Screen is a navigable path and the role it requires.
type Screen struct {
	Path         string
	RequiredRole models.Role
	Public       bool
}

// Screens is the client's route table.
var Screens = []Screen{
	{Path: "/", Public: true},
	{Path: "/login", Public: true},
	{Path: "/doctors", Public: true},
	{Path: "/signup", Public: true},

	{Path: "/admin", RequiredRole: models.RoleAdmin},
	{Path: "/admin/doctorList", RequiredRole: models.RoleAdmin},
	{Path: "/admin/patientList", RequiredRole: models.RoleAdmin},
	{Path: "/admin/addDoctor", RequiredRole: models.RoleAdmin},
	{Path: "/admin/editDoctor/:id", RequiredRole: models.RoleAdmin},
	{Path: "/admin/appointments", RequiredRole: models.RoleAdmin},

	{Path: "/patient", RequiredRole: models.RolePatient},
	{Path: "/patient/EditPatient", RequiredRole: models.RolePatient},
	{Path: "/patient/FeedbackPage", RequiredRole: models.RolePatient},

	{Path: "/doctor", RequiredRole: models.RoleDoctor},
	{Path: "/doctor/doctorEdit", RequiredRole: models.RoleDoctor},
	{Path: "/doctor/holiday", RequiredRole: models.RoleDoctor},
}

// Lookup finds the screen for path. Segments starting with ':' match any value.
func Lookup(path string) (Screen, bool) {
	want := splitPath(path)
	for _, s := range Screens {
		if matchSegments(splitPath(s.Path), want) {
			return s, true
		}
	}
	return Screen{}, false
}

// AuthorizePath resolves path against the route table and authorizes it.
func (g *Guard) AuthorizePath(ctx context.Context, path string) Decision {
	screen, ok := Lookup(path)
	if !ok {
		return Decision{NotFound: true}
	}
	if screen.Public {
		return allow()
	}
	return g.Authorize(ctx, strings.ToLower(string(screen.RequiredRole)))
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}
