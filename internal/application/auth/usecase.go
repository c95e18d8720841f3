// Package auth implementa registro y login de usuarios de la tienda.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
	"github.com/firmeza/firmeza-api/pkg/config"
	"github.com/firmeza/firmeza-api/pkg/jwt"
	"github.com/firmeza/firmeza-api/pkg/logger"
)

// UseCase registro y autenticación. El registro crea el usuario de login y su
// ficha de cliente en una transacción; el login emite el JWT con el rol.
type UseCase struct {
	txRunner     RegistrationTxRunner
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	mailer       WelcomeMailer
	jwtCfg       config.JWTConfig
	log          *logger.Logger
}

// NewUseCase construye el caso de uso. mailer puede ser nil si no hay SMTP.
func NewUseCase(
	txRunner RegistrationTxRunner,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	mailer WelcomeMailer,
	jwtCfg config.JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		mailer:       mailer,
		jwtCfg:       jwtCfg,
		log:          log,
	}
}

// Register crea la cuenta de un cliente de la tienda: User con hash bcrypt y
// Customer asociados entre sí, rol customer. Email y documento deben ser únicos.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.DocumentNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := uc.userRepo.GetByEmail(in.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := uc.customerRepo.GetByDocument(in.DocumentNumber); err == nil {
		return nil, domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	documentType := in.DocumentType
	if documentType == "" {
		documentType = "CC"
	}

	userID := uuid.New().String()
	customerID := uuid.New().String()
	user := &entity.User{
		ID:           userID,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleCustomer,
		CustomerID:   &customerID,
	}
	customer := &entity.Customer{
		ID:             customerID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentType:   documentType,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		City:           in.City,
		UserID:         &userID,
		IsActive:       true,
	}

	err = uc.txRunner.RunRegistration(ctx, func(
		userRepo repository.UserRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := customerRepo.Create(customer); err != nil {
			return err
		}
		return userRepo.Create(user)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	if uc.mailer != nil {
		go func() {
			if err := uc.mailer.SendWelcome(customer.Email, customer.FullName()); err != nil {
				uc.log.Warn().Err(err).Str("email", customer.Email).Msg("no se pudo enviar el correo de bienvenida")
			}
		}()
	}

	return uc.authResponse(user)
}

// Login verifica credenciales y devuelve el JWT. Las cuentas de cliente
// desactivadas no pueden iniciar sesión.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	if user.Role == entity.RoleCustomer && user.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*user.CustomerID)
		if err != nil {
			return nil, err
		}
		if !customer.IsActive {
			return nil, domain.ErrInactiveAccount
		}
	}

	return uc.authResponse(user)
}

// authResponse emite el token y arma el perfil de la respuesta.
func (uc *UseCase) authResponse(user *entity.User) (*dto.AuthResponse, error) {
	customerID := ""
	if user.CustomerID != nil {
		customerID = *user.CustomerID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, customerID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:      token,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		CustomerID: customerID,
		Role:       user.Role,
	}, nil
}
