package dto

// ImportResult resultado de una importación masiva: filas procesadas, filas con
// error y el detalle de cada error (la importación nunca aborta por una fila).
type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}
