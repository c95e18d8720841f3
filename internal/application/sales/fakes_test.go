package sales_test

import (
	"context"
	"sync"

	"github.com/firmeza/firmeza-api/internal/application/sales"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// memStore estado en memoria compartido por los fakes. El mutex protege el
// acceso desde la goroutine de finalización del recibo.
type memStore struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	customers   map[string]*entity.Customer
	sales       map[string]*entity.Sale
	details     []*entity.SaleDetail
	saleNumbers map[string]bool

	// failSaleCreates fuerza ErrDuplicate en las primeras N creaciones de venta
	// para ejercitar el reintento de numeración.
	failSaleCreates int
}

func newMemStore() *memStore {
	return &memStore{
		products:    make(map[string]*entity.Product),
		customers:   make(map[string]*entity.Customer),
		sales:       make(map[string]*entity.Sale),
		saleNumbers: make(map[string]bool),
	}
}

type storeSnapshot struct {
	products    map[string]*entity.Product
	sales       map[string]*entity.Sale
	details     []*entity.SaleDetail
	saleNumbers map[string]bool
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		products:    make(map[string]*entity.Product, len(s.products)),
		sales:       make(map[string]*entity.Sale, len(s.sales)),
		details:     append([]*entity.SaleDetail(nil), s.details...),
		saleNumbers: make(map[string]bool, len(s.saleNumbers)),
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, sale := range s.sales {
		cp := *sale
		snap.sales[id] = &cp
	}
	for n := range s.saleNumbers {
		snap.saleNumbers[n] = true
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.products = snap.products
	s.sales = snap.sales
	s.details = snap.details
	s.saleNumbers = snap.saleNumbers
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *memStore }

func (tr *fakeTxRunner) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tr.s.mu.Lock()
	snap := tr.s.snapshot()
	tr.s.mu.Unlock()

	err := fn(&fakeProductRepo{tr.s}, &fakeSaleRepo{tr.s}, &fakeCustomerRepo{tr.s})
	if err != nil {
		tr.s.mu.Lock()
		tr.s.restore(snap)
		tr.s.mu.Unlock()
	}
	return err
}

// ── Repos ─────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) ListActive(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListActiveByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeSaleRepo struct{ s *memStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failSaleCreates > 0 {
		r.s.failSaleCreates--
		return domain.ErrDuplicate
	}
	if r.s.saleNumbers[sale.SaleNumber] {
		return domain.ErrDuplicate
	}
	cp := *sale
	r.s.sales[sale.ID] = &cp
	r.s.saleNumbers[sale.SaleNumber] = true
	return nil
}

func (r *fakeSaleRepo) CreateDetail(detail *entity.SaleDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *detail
	r.s.details = append(r.s.details, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetDetailsBySaleID(saleID string) ([]*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SaleDetail
	for _, d := range r.s.details {
		if d.SaleID == saleID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.CustomerID == customerID {
			cp := *sale
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		cp := *sale
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSaleRepo) CountByCustomer(customerID string) (int, error) {
	list, _ := r.ListByCustomer(customerID, 0, 0)
	return len(list), nil
}

func (r *fakeSaleRepo) UpdatePDFPath(saleID, pdfPath string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[saleID]
	if !ok {
		return domain.ErrNotFound
	}
	sale.PDFPath = pdfPath
	return nil
}

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByDocument(documentNumber string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.DocumentNumber == documentNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) SetActive(id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

func (r *fakeCustomerRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	return nil
}

// ── Recibos ───────────────────────────────────────────────────────────────────

type fakeReceiptGenerator struct{}

func (fakeReceiptGenerator) GenerateReceipt(*entity.Sale, []*entity.SaleDetail, *entity.Customer, map[string]string) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// fakeReceiptStore guarda en memoria y avisa por canal cuando el recibo de una
// venta quedó escrito (la generación corre en una goroutine).
type fakeReceiptStore struct {
	mu    sync.Mutex
	files map[string][]byte
	saved chan string
}

func newFakeReceiptStore() *fakeReceiptStore {
	return &fakeReceiptStore{files: make(map[string][]byte), saved: make(chan string, 8)}
}

func (s *fakeReceiptStore) Save(fileName string, data []byte) (string, error) {
	s.mu.Lock()
	s.files[fileName] = data
	s.mu.Unlock()
	s.saved <- fileName
	return "/recibos/" + fileName, nil
}

func (s *fakeReceiptStore) Open(fileName string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[fileName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

var _ sales.SaleTxRunner = (*fakeTxRunner)(nil)
var _ repository.ProductRepository = (*fakeProductRepo)(nil)
var _ repository.SaleRepository = (*fakeSaleRepo)(nil)
var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)
var _ sales.ReceiptGenerator = (fakeReceiptGenerator{})
var _ sales.ReceiptStore = (*fakeReceiptStore)(nil)
