package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Human-readable reference codes carried on documents. Sequential references
// (TKT-000042) come from the repository counters; these helpers cover codes
// that only need to be unique, not ordered.

// GenerateTicketNo generates a unique ticket reference
func GenerateTicketNo() string {
	return "TKT-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateBarcode generates a fallback barcode for articles created without one
func GenerateBarcode() string {
	return "ART-" + strings.ToUpper(uuid.New().String()[:8])
}

// FormatSequence formats a sequential counter as a document reference,
// e.g. FormatSequence("QT", 7) => "QT-000007".
func FormatSequence(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}
