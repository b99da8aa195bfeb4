package companies

// Company is an organizational scope ("empresa") a user can act within.
// Owned externally; this service only reads it to enrich login responses.
type Company struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre,omitempty"`
	Email string `json:"email,omitempty"`
}
