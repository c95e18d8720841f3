// Package excel lee y escribe hojas de cálculo xlsx (excelize).
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadFirstSheet devuelve todas las filas de la primera hoja del archivo.
// Un archivo ilegible aborta la lectura completa.
func ReadFirstSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el archivo no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	return rows, nil
}
