package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Nom      string `json:"nom"      validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CompteResponse struct {
	ID     uint   `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Rol    string `json:"rol"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int            `json:"expires_in"` // seconds
	User        CompteResponse `json:"user"`
}
