package rentals

import (
	"context"

	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// RentalTxRunner ejecuta el callback dentro de una transacción con repos de
// flota atados a ella. El alta del alquiler y el cambio de estado del vehículo
// confirman juntos o no confirman.
type RentalTxRunner interface {
	RunRental(ctx context.Context, fn func(
		vehicleRepo repository.VehicleRepository,
		rentalRepo repository.RentalRepository,
	) error) error
}
