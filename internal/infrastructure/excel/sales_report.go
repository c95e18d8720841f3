package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/firmeza/firmeza-api/internal/application/dto"
)

// WriteSalesReport construye el reporte de ventas en xlsx y devuelve sus bytes.
func WriteSalesReport(sales []*dto.SaleResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ventas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Número", "Fecha", "Cliente", "Subtotal", "IVA", "Total", "Estado"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("escribir encabezado: %w", err)
		}
	}

	for i, s := range sales {
		rowNum := i + 2
		values := []any{
			s.SaleNumber,
			s.SaleDate,
			s.CustomerName,
			s.Subtotal.InexactFloat64(),
			s.Tax.InexactFloat64(),
			s.Total.InexactFloat64(),
			s.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("escribir fila %d: %w", rowNum, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
