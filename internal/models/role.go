package models

import "strings"

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleAgent  Role = "Agent"
	RoleClient Role = "Client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleClient:
		return true
	}
	return false
}

// ParseRole accepts the role names case-insensitively ("agent", "AGENT", "Agent").
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleAdmin, RoleAgent, RoleClient} {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, true
		}
	}
	return "", false
}
