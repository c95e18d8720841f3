package rentals_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/application/rentals"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// Fakes en memoria para los puertos de flota y clientes.

type memVehicleRepo struct {
	vehicles map[string]*entity.Vehicle

	// failUpdateStatus fuerza el fallo del cambio de estado para probar que la
	// transacción revierte el alta del alquiler.
	failUpdateStatus bool
	lockCalls        int
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{vehicles: make(map[string]*entity.Vehicle)}
}

func (r *memVehicleRepo) Create(v *entity.Vehicle) error {
	r.vehicles[v.ID] = v
	return nil
}

func (r *memVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *memVehicleRepo) GetByPlate(plateNumber string) (*entity.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.PlateNumber == plateNumber {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memVehicleRepo) GetForUpdate(id string) (*entity.Vehicle, error) {
	r.lockCalls++
	return r.GetByID(id)
}

func (r *memVehicleRepo) Update(v *entity.Vehicle) error {
	if _, ok := r.vehicles[v.ID]; !ok {
		return domain.ErrNotFound
	}
	r.vehicles[v.ID] = v
	return nil
}

func (r *memVehicleRepo) UpdateStatus(id, status string) error {
	if r.failUpdateStatus {
		return errors.New("update vehicle status: conexión perdida")
	}
	v, ok := r.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	return nil
}

func (r *memVehicleRepo) List(limit, offset int) ([]*entity.Vehicle, error) { return nil, nil }
func (r *memVehicleRepo) Delete(id string) error {
	delete(r.vehicles, id)
	return nil
}

type memRentalRepo struct {
	rentals map[string]*entity.VehicleRental
}

func newMemRentalRepo() *memRentalRepo {
	return &memRentalRepo{rentals: make(map[string]*entity.VehicleRental)}
}

func (r *memRentalRepo) Create(rental *entity.VehicleRental) error {
	r.rentals[rental.ID] = rental
	return nil
}

func (r *memRentalRepo) GetByID(id string) (*entity.VehicleRental, error) {
	rental, ok := r.rentals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rental, nil
}

func (r *memRentalRepo) ListByVehicle(vehicleID string, limit, offset int) ([]*entity.VehicleRental, error) {
	return nil, nil
}

func (r *memRentalRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.VehicleRental, error) {
	var out []*entity.VehicleRental
	for _, rental := range r.rentals {
		if rental.CustomerID == customerID {
			out = append(out, rental)
		}
	}
	return out, nil
}

func (r *memRentalRepo) Update(rental *entity.VehicleRental) error {
	if _, ok := r.rentals[rental.ID]; !ok {
		return domain.ErrNotFound
	}
	r.rentals[rental.ID] = rental
	return nil
}

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *memCustomerRepo) GetByDocument(documentNumber string) (*entity.Customer, error) {
	return nil, domain.ErrNotFound
}

func (r *memCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	return nil, domain.ErrNotFound
}

func (r *memCustomerRepo) Update(c *entity.Customer) error              { return nil }
func (r *memCustomerRepo) SetActive(id string, active bool) error       { return nil }
func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) Delete(id string) error { return nil }

// memRentalTxRunner emula RunRental: si el callback falla, vehículos y
// alquileres vuelven al estado previo, como el rollback en PostgreSQL.
type memRentalTxRunner struct {
	vehicles *memVehicleRepo
	rentals  *memRentalRepo
}

func (tr *memRentalTxRunner) RunRental(_ context.Context, fn func(
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
) error) error {
	vehSnap := make(map[string]entity.Vehicle, len(tr.vehicles.vehicles))
	for id, v := range tr.vehicles.vehicles {
		vehSnap[id] = *v
	}
	rentSnap := make(map[string]entity.VehicleRental, len(tr.rentals.rentals))
	for id, r := range tr.rentals.rentals {
		rentSnap[id] = *r
	}

	err := fn(tr.vehicles, tr.rentals)
	if err != nil {
		tr.vehicles.vehicles = make(map[string]*entity.Vehicle, len(vehSnap))
		for id := range vehSnap {
			v := vehSnap[id]
			tr.vehicles.vehicles[id] = &v
		}
		tr.rentals.rentals = make(map[string]*entity.VehicleRental, len(rentSnap))
		for id := range rentSnap {
			r := rentSnap[id]
			tr.rentals.rentals[id] = &r
		}
	}
	return err
}

var _ rentals.RentalTxRunner = (*memRentalTxRunner)(nil)

type fixture struct {
	vehicles  *memVehicleRepo
	rentals   *memRentalRepo
	customers *memCustomerRepo
	uc        *rentals.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		vehicles:  newMemVehicleRepo(),
		rentals:   newMemRentalRepo(),
		customers: newMemCustomerRepo(),
	}
	txRunner := &memRentalTxRunner{vehicles: f.vehicles, rentals: f.rentals}
	f.uc = rentals.NewUseCase(txRunner, f.vehicles, f.rentals, f.customers)
	return f
}

func (f *fixture) seedVehicle(status string, pricePerDay int64) *entity.Vehicle {
	v := &entity.Vehicle{
		ID:          uuid.New().String(),
		Brand:       "Caterpillar",
		Model:       "416F2",
		PlateNumber: "XYZ-" + uuid.New().String()[:4],
		Year:        2022,
		PricePerDay: decimal.NewFromInt(pricePerDay),
		Status:      status,
		IsActive:    true,
	}
	f.vehicles.vehicles[v.ID] = v
	return v
}

func (f *fixture) seedCustomer(active bool) *entity.Customer {
	c := &entity.Customer{
		ID:        uuid.New().String(),
		FirstName: "Carlos",
		LastName:  "Ruiz",
		Email:     "carlos@example.com",
		IsActive:  active,
	}
	f.customers.customers[c.ID] = c
	return c
}

func TestRent_CalculaDiasYTotal(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)
	customer := f.seedCustomer(true)

	resp, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-04",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Days)
	assert.True(t, decimal.NewFromInt(1350000).Equal(resp.TotalAmount), "total: %s", resp.TotalAmount)
	assert.Regexp(t, `^RV-\d{8}-[0-9A-F]{4}$`, resp.RentalNumber)
	assert.False(t, resp.IsReturned)

	// El vehículo queda ocupado.
	assert.Equal(t, entity.VehicleStatusRented, f.vehicles.vehicles[vehicle.ID].Status)
}

func TestRent_MismoDiaCobraUnDia(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)
	customer := f.seedCustomer(true)

	resp, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Days)
	assert.True(t, decimal.NewFromInt(450000).Equal(resp.TotalAmount))
}

func TestRent_FechaFinAnteriorEsInvalida(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)
	customer := f.seedCustomer(true)

	_, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-04",
		EndDate:    "2026-09-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRent_VehiculoOcupadoNoSeAlquila(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusRented, 450000)
	customer := f.seedCustomer(true)

	_, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-02",
	})
	assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
}

func TestRent_VehiculoEnMantenimiento(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusMaintenance, 450000)
	customer := f.seedCustomer(true)

	_, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-02",
	})
	assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
}

func TestRent_ClienteInactivo(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)
	customer := f.seedCustomer(false)

	_, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-02",
	})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestRent_FalloAlMarcarRentadoRevierteElAlquiler(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)
	customer := f.seedCustomer(true)
	f.vehicles.failUpdateStatus = true

	_, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-03",
	})
	require.Error(t, err)

	// El alta del alquiler y el cambio de estado confirman juntos: sin el
	// segundo tampoco queda el primero.
	assert.Empty(t, f.rentals.rentals)
	assert.Equal(t, entity.VehicleStatusAvailable, f.vehicles.vehicles[vehicle.ID].Status)
}

func TestRent_VerificaDisponibilidadConLaFilaBloqueada(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)
	customer := f.seedCustomer(true)

	_, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-02",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.vehicles.lockCalls, "la disponibilidad se lee con FOR UPDATE")

	// Un segundo alquiler sobre el mismo vehículo ve el estado ya confirmado.
	_, err = f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-05",
		EndDate:    "2026-09-06",
	})
	assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
	require.Len(t, f.rentals.rentals, 1)
}

func TestReturn_LiberaElVehiculo(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)
	customer := f.seedCustomer(true)

	rented, err := f.uc.Rent(context.Background(), dto.CreateRentalRequest{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-03",
	})
	require.NoError(t, err)

	returned, err := f.uc.Return(context.Background(), rented.ID)
	require.NoError(t, err)

	assert.True(t, returned.IsReturned)
	assert.NotEmpty(t, returned.ReturnDate)
	assert.Equal(t, entity.VehicleStatusAvailable, f.vehicles.vehicles[vehicle.ID].Status)

	// Devolver dos veces es un conflicto.
	_, err = f.uc.Return(context.Background(), rented.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateVehicle_PlacaDuplicada(t *testing.T) {
	f := newFixture()
	existing := f.seedVehicle(entity.VehicleStatusAvailable, 450000)

	_, err := f.uc.CreateVehicle(context.Background(), dto.CreateVehicleRequest{
		Brand:       "JCB",
		Model:       "3CX",
		PlateNumber: existing.PlateNumber,
		Year:        2023,
		PricePerDay: decimal.NewFromInt(500000),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateVehicle_EstadoInvalido(t *testing.T) {
	f := newFixture()
	vehicle := f.seedVehicle(entity.VehicleStatusAvailable, 450000)

	_, err := f.uc.UpdateVehicle(context.Background(), vehicle.ID, dto.UpdateVehicleRequest{
		Status: "Volando",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
