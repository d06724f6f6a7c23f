// Package docnum produces the human-readable numbers stamped on
// invoices and receipts.
package docnum

import (
	"strconv"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// Clock supplies the current epoch milliseconds, injected so callers
// can test the format deterministically.
type Clock func() int64

// Generate returns prefix + the last six digits of the current epoch
// milliseconds, with the prefix chosen by document kind. Two documents
// of the same kind issued inside the same millisecond-truncation window
// can collide; uniqueness is enforced downstream by the unique index on
// the documents table, not here.
func Generate(kind enum.DocType, cfg *entity.SystemConfig, now Clock) string {
	prefix := cfg.InvoicePrefix
	if kind == enum.DocTypeReceipt {
		prefix = cfg.ReceiptPrefix
	}

	millis := strconv.FormatInt(now(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	for len(millis) < 6 {
		millis = "0" + millis
	}
	return prefix + millis
}
