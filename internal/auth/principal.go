package auth

import (
	"time"

	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    uint
	Email     string
	Role      models.Role
	ProfileID uint // client_id or agent_id owned by the user

	TokenID   string
	ExpiresAt time.Time
}

// Authorize is the single role check used by every gated route.
func Authorize(p *Principal, allowed ...models.Role) bool {
	if p == nil {
		return false
	}
	for _, r := range allowed {
		if p.Role == r {
			return true
		}
	}
	return false
}
