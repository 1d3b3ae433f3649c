package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateReference returns a human-readable booking reference:
// BK-YYYYMMDD-HHMMSS-NNNN.
func GenerateReference(now time.Time) string {
	return fmt.Sprintf("BK-%s-%s-%04d", now.Format("20060102"), now.Format("150405"), rand.IntN(10000))
}
