package dto

// CreateCustomerRequest body para POST /api/admin/customers.
type CreateCustomerRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentType   string `json:"document_type,omitempty"` // CC por defecto
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/admin/customers/:id.
type UpdateCustomerRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	IsActive       bool   `json:"is_active"`
}

// DeleteCustomerResponse resultado del borrado protegido:
// "deleted" si se eliminó, "deactivated" si tenía ventas y se desactivó.
type DeleteCustomerResponse struct {
	ID     string `json:"id"`
	Result string `json:"result"`
}
