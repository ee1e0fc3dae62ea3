// internal/utils/crypto.go
package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func HashString(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// NewResourceID returns an id for a record created on the ledger, e.g. "order-<uuid>".
func NewResourceID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// CertificateID ties a certificate to its product and mint time.
func CertificateID(productID string, at time.Time) string {
	return fmt.Sprintf("cert-%s-%d", productID, at.UnixMilli())
}
