// Package receipts almacena los recibos PDF en disco local.
package receipts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appsales "github.com/firmeza/firmeza-api/internal/application/sales"
)

// publicPrefix ruta pública con la que los recibos se registran en la venta.
const publicPrefix = "/recibos/"

var _ appsales.ReceiptStore = (*Store)(nil)

// Store guarda y lee recibos en un directorio configurable.
type Store struct {
	dir string
}

// NewStore crea el directorio si no existe.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de recibos: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save escribe el PDF y devuelve la ruta pública (/recibos/<nombre>).
func (s *Store) Save(fileName string, data []byte) (string, error) {
	fileName = sanitize(fileName)
	if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar recibo: %w", err)
	}
	return publicPrefix + fileName, nil
}

// Open lee un recibo ya guardado.
func (s *Store) Open(fileName string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, sanitize(fileName)))
	if err != nil {
		return nil, fmt.Errorf("leer recibo: %w", err)
	}
	return data, nil
}

// sanitize descarta cualquier componente de ruta del nombre.
func sanitize(fileName string) string {
	fileName = filepath.Base(fileName)
	return strings.TrimPrefix(fileName, ".")
}
