package dto

// RegisterRequest body para POST /api/auth/register.
// Crea el usuario de login y su ficha de cliente en una sola operación.
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentType   string `json:"document_type,omitempty"`
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token más perfil básico.
type AuthResponse struct {
	Token      string `json:"token"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	CustomerID string `json:"customer_id,omitempty"`
	Role       string `json:"role"`
}
