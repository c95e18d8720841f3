package auth

import (
	"context"

	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta el alta de usuario y cliente en una sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// WelcomeMailer envía el correo de bienvenida tras el registro.
// El fallo del envío nunca invalida el registro.
type WelcomeMailer interface {
	SendWelcome(to, customerName string) error
}
