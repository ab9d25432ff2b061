package auth

// Scope is the audience a token is issued for. Every protected route group
// is configured with the scope it requires; the middleware rejects tokens
// carrying any other scope.
type Scope string

// Token scopes
const (
	ScopeAdmin      Scope = "admin"      // Administrator surface
	ScopeAmbassador Scope = "ambassador" // Ambassador surface
)

// ScopeForUser returns the scope a user's role entitles them to
func ScopeForUser(isAmbassador bool) Scope {
	if isAmbassador {
		return ScopeAmbassador
	}
	return ScopeAdmin
}
