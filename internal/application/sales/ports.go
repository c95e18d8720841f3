package sales

import (
	"context"

	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repos necesarios para crear una venta (productos con bloqueo de fila,
// cabecera/detalle de venta y lectura de cliente).
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptGenerator genera el recibo PDF de una venta ya confirmada.
type ReceiptGenerator interface {
	GenerateReceipt(sale *entity.Sale, details []*entity.SaleDetail, customer *entity.Customer, productNames map[string]string) ([]byte, error)
}

// ReceiptStore persiste el PDF generado y devuelve la ruta pública con la que
// se expone al cliente (ej. /recibos/Recibo_V-20260901-A3F1.pdf).
type ReceiptStore interface {
	Save(fileName string, data []byte) (publicPath string, err error)
	// Open devuelve el contenido de un recibo ya guardado.
	Open(fileName string) ([]byte, error)
}

// Mailer envía la confirmación de compra con el recibo adjunto.
// Una implementación nula es válida cuando SMTP no está configurado.
type Mailer interface {
	SendPurchaseConfirmation(to, customerName string, sale *entity.Sale, attachment []byte, attachmentName string) error
}
