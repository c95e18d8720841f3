package sales

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// randomSuffix 4 caracteres hexadecimales en mayúscula.
func randomSuffix() string {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// rand.Read sobre el pool del kernel no falla en la práctica;
		// el fallback mantiene el formato.
		return fmt.Sprintf("%04X", time.Now().UnixNano()&0xFFFF)
	}
	return strings.ToUpper(hex.EncodeToString(b[:]))
}

// NewSaleNumber número de venta con formato V-YYYYMMDD-XXXX.
// El sufijo es aleatorio: ante una colisión (único en BD) el caller
// debe regenerar y reintentar.
func NewSaleNumber(now time.Time) string {
	return fmt.Sprintf("V-%s-%s", now.Format("20060102"), randomSuffix())
}
