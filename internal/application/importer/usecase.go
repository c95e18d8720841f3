// Package importer implementa la importación masiva de datos desorganizados
// desde hojas de cálculo: reconcilia productos y clientes por fila y registra
// ventas históricas sin tocar el stock.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
	domsales "github.com/firmeza/firmeza-api/internal/domain/sales"
	"github.com/firmeza/firmeza-api/pkg/logger"
)

// Alias de encabezado aceptados por columna. La comparación se hace en
// minúsculas, sin espacios sobrantes y con tildes plegadas ("código" == "codigo").
var (
	aliasProductCode  = []string{"codigo", "code", "sku"}
	aliasProductName  = []string{"producto", "product", "nombre", "name"}
	aliasPrice        = []string{"precio", "price"}
	aliasStock        = []string{"stock", "cantidad", "quantity"}
	aliasCustomerDoc  = []string{"documento", "document", "cedula", "nit"}
	aliasEmail        = []string{"email", "correo"}
	aliasCustomerName = []string{"cliente", "customer", "nombre cliente"}
	aliasQuantity     = []string{"cantidad", "quantity", "qty"}
)

var errMissingProduct = errors.New("faltan datos obligatorios del producto (código o nombre)")
var errMissingCustomer = errors.New("faltan datos obligatorios del cliente (documento o email)")

// ImportUseCase reconcilia filas de una hoja de cálculo contra el catálogo,
// el directorio de clientes y el libro de ventas.
type ImportUseCase struct {
	txRunner ImportTxRunner
	log      *logger.Logger
}

// NewImportUseCase construye el caso de uso de importación.
func NewImportUseCase(txRunner ImportTxRunner, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner, log: log}
}

// Import procesa las filas (la primera es el encabezado). Cada fila se confirma
// en su propia transacción; los errores por fila se acumulan y la importación
// continúa hasta el final.
func (uc *ImportUseCase) Import(ctx context.Context, rows [][]string) (*dto.ImportResult, error) {
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}

	headers := make(map[string]int, len(rows[0]))
	for col, raw := range rows[0] {
		h := normalizeHeader(raw)
		if h != "" {
			headers[h] = col
		}
	}

	result := &dto.ImportResult{Errors: []string{}}

	// Entidades ya resueltas en esta misma importación: una fila posterior que
	// repita el código o el documento reutiliza la entidad sin tocar la BD.
	productCache := make(map[string]*entity.Product)
	customerCache := make(map[string]*entity.Customer)

	for i, row := range rows[1:] {
		sheetRow := i + 2 // fila 1 es el encabezado

		var (
			rowProduct  *entity.Product
			productKey  string
			rowCustomer *entity.Customer
			customerKey string
		)
		err := uc.txRunner.RunImportRow(ctx, func(
			productRepo repository.ProductRepository,
			customerRepo repository.CustomerRepository,
			saleRepo repository.SaleRepository,
		) error {
			var err error
			rowProduct, productKey, err = uc.resolveProduct(productRepo, row, headers, productCache)
			if err != nil {
				return err
			}
			rowCustomer, customerKey, err = uc.resolveCustomer(customerRepo, row, headers, customerCache)
			if err != nil {
				return err
			}
			return uc.recordSale(saleRepo, row, headers, sheetRow, rowProduct, rowCustomer)
		})
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %v", sheetRow, err))
			continue
		}
		// El caché solo se alimenta con filas confirmadas: una entidad creada por
		// una fila que terminó en rollback no existe en la BD y no debe reusarse.
		if productKey != "" {
			productCache[productKey] = rowProduct
		}
		if customerKey != "" {
			customerCache[customerKey] = rowCustomer
		}
		result.SuccessCount++
	}

	uc.log.Info().
		Int("ok", result.SuccessCount).
		Int("errores", result.ErrorCount).
		Msg("importación finalizada")
	return result, nil
}

// resolveProduct busca el producto por código y luego por nombre; si no existe
// lo crea con los valores de la fila. Sobre uno existente actualiza precio y
// stock solo cuando la fila trae valores positivos. Devuelve además la clave de
// caché (el código que trajo la fila; vacía si el código fue sintetizado): el
// llamador la registra recién cuando la transacción de la fila confirma.
func (uc *ImportUseCase) resolveProduct(productRepo repository.ProductRepository, row []string, headers map[string]int, cache map[string]*entity.Product) (*entity.Product, string, error) {
	code := cellValue(row, headers, aliasProductCode...)
	name := cellValue(row, headers, aliasProductName...)
	if code == "" && name == "" {
		return nil, "", errMissingProduct
	}
	cacheKey := code

	price, _ := decimal.NewFromString(cellValue(row, headers, aliasPrice...))
	stock, _ := strconv.Atoi(cellValue(row, headers, aliasStock...))

	if code != "" {
		if p, ok := cache[code]; ok {
			return p, "", nil
		}
	}

	var product *entity.Product
	if code != "" {
		if p, err := productRepo.GetByCode(code); err == nil {
			product = p
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", err
		}
	}
	if product == nil && name != "" {
		if p, err := productRepo.GetByName(name); err == nil {
			product = p
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", err
		}
	}

	if product == nil {
		if code == "" {
			code = uuid.New().String()[:8]
		}
		if name == "" {
			name = "Producto sin nombre"
		}
		product = &entity.Product{
			ID:       uuid.New().String(),
			Code:     code,
			Name:     name,
			Price:    price,
			Stock:    stock,
			Type:     entity.ProductTypeMaterial,
			IsActive: true,
		}
		if err := productRepo.Create(product); err != nil {
			return nil, "", err
		}
	} else {
		if price.IsPositive() {
			product.Price = price
		}
		if stock > 0 {
			product.Stock = stock
		}
		if err := productRepo.Update(product); err != nil {
			return nil, "", err
		}
	}

	return product, cacheKey, nil
}

// resolveCustomer busca el cliente por documento y luego por email; si no
// existe lo crea con valores por defecto (tipo CC, email de relleno único).
// Devuelve además la clave de caché (el documento que trajo la fila; vacía si
// se rellenó con el valor por defecto), a registrar tras el commit de la fila.
func (uc *ImportUseCase) resolveCustomer(customerRepo repository.CustomerRepository, row []string, headers map[string]int, cache map[string]*entity.Customer) (*entity.Customer, string, error) {
	doc := cellValue(row, headers, aliasCustomerDoc...)
	email := cellValue(row, headers, aliasEmail...)
	name := cellValue(row, headers, aliasCustomerName...)
	if doc == "" && email == "" {
		return nil, "", errMissingCustomer
	}
	cacheKey := doc

	if doc != "" {
		if c, ok := cache[doc]; ok {
			return c, "", nil
		}
	}

	var customer *entity.Customer
	if doc != "" {
		if c, err := customerRepo.GetByDocument(doc); err == nil {
			customer = c
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", err
		}
	}
	if customer == nil && email != "" {
		if c, err := customerRepo.GetByEmail(email); err == nil {
			customer = c
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", err
		}
	}

	if customer == nil {
		if doc == "" {
			doc = "N/A"
		}
		if email == "" {
			// único para no chocar con la restricción de unicidad del email
			email = fmt.Sprintf("noemail-%s@example.com", uuid.New().String())
		}
		firstName, lastName := splitName(name)
		if firstName == "" {
			firstName = "Cliente"
			lastName = "Importado"
		}
		customer = &entity.Customer{
			ID:             uuid.New().String(),
			FirstName:      firstName,
			LastName:       lastName,
			DocumentType:   "CC",
			DocumentNumber: doc,
			Email:          email,
			Phone:          "N/A",
			IsActive:       true,
		}
		if err := customerRepo.Create(customer); err != nil {
			return nil, "", err
		}
	} else if name != "" {
		customer.FirstName, customer.LastName = splitName(name)
		if err := customerRepo.Update(customer); err != nil {
			return nil, "", err
		}
	}

	return customer, cacheKey, nil
}

// recordSale registra una venta histórica de una línea cuando la fila trae
// cantidad positiva. Las ventas importadas no llevan impuesto y no descuentan
// stock: son hechos ya ocurridos, no operaciones de checkout.
func (uc *ImportUseCase) recordSale(saleRepo repository.SaleRepository, row []string, headers map[string]int, sheetRow int, product *entity.Product, customer *entity.Customer) error {
	qtyStr := cellValue(row, headers, aliasQuantity...)
	if qtyStr == "" {
		return nil // la fila solo aporta producto/cliente
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty <= 0 {
		return nil
	}

	saleID := uuid.New().String()
	subtotal := domsales.LineSubtotal(product.Price, qty)
	sale := &entity.Sale{
		ID:         saleID,
		SaleNumber: fmt.Sprintf("IMP-%d-%d", time.Now().UnixNano(), sheetRow),
		SaleDate:   time.Now().UTC(),
		CustomerID: customer.ID,
		Subtotal:   subtotal,
		Tax:        decimal.Zero,
		Total:      subtotal,
		Status:     entity.SaleStatusCompleted,
	}
	if err := saleRepo.Create(sale); err != nil {
		return err
	}
	return saleRepo.CreateDetail(&entity.SaleDetail{
		ID:        uuid.New().String(),
		SaleID:    saleID,
		ProductID: product.ID,
		Quantity:  qty,
		UnitPrice: product.Price,
		Subtotal:  subtotal,
	})
}

// normalizeHeader minúsculas, sin espacios sobrantes y sin tildes.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		return folded
	}
	return s
}

// cellValue primer valor no vacío entre los alias dados.
func cellValue(row []string, headers map[string]int, aliases ...string) string {
	for _, alias := range aliases {
		col, ok := headers[alias]
		if !ok || col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			return v
		}
	}
	return ""
}

// splitName separa nombre y apellido por el primer espacio.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
