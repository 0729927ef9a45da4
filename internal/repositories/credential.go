package repositories

// Credential is the caller identity forwarded to the store with every call.
// The zero value is the anonymous caller.
type Credential struct {
	Token   string
	Subject string
	Email   string
	Role    string
}

// Anonymous reports whether the credential carries no token.
func (c Credential) Anonymous() bool {
	return c.Token == ""
}

// dbRole is the database role the store's row-level policies evaluate.
// Only the two roles the policies know about are ever returned.
func (c Credential) dbRole() string {
	if c.Anonymous() {
		return "anon"
	}
	return "authenticated"
}

func (c Credential) claims() map[string]any {
	if c.Anonymous() {
		return map[string]any{"role": "anon"}
	}
	return map[string]any{
		"sub":   c.Subject,
		"email": c.Email,
		"role":  c.dbRole(),
	}
}
