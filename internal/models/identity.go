package models

// Identity is the authenticated principal shown in the header and used for
// access decisions. It is owned by the auth store; nothing else mutates it.
type Identity struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Valid reports whether the identity represents an authenticated principal.
func (i Identity) Valid() bool {
	return i.Name != ""
}
