package session

import "github.com/sarkaridakiya/dakiya/internal/domain"

// demoAccount is a fixed offline credential. The demo set is only
// consulted when the remote service is unreachable and demo mode is
// enabled; a reachable server's rejection is never retried against it.
type demoAccount struct {
	email    string
	password string
	name     string
	role     domain.Role
}

var demoAccounts = []demoAccount{
	{email: "admin@sarkaridakiya.in", password: "admin123", name: "Admin User", role: domain.RoleAdmin},
	{email: "user@example.com", password: "user123", name: "Regular User", role: domain.RoleUser},
}

// findDemoAccount matches credentials against the demo set. Role must
// match too, mirroring the login form's role selector.
func findDemoAccount(email, password string, role domain.Role) (demoAccount, bool) {
	for _, acc := range demoAccounts {
		if acc.email == email && acc.password == password && acc.role == role {
			return acc, true
		}
	}
	return demoAccount{}, false
}
