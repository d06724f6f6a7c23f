package enum

// DocType distinguishes the two kinds of issued documents.
type DocType string

const (
	DocTypeInvoice DocType = "Invoice"
	DocTypeReceipt DocType = "Receipt"
)

// Valid reports whether the value is a known document type.
func (d DocType) Valid() bool {
	return d == DocTypeInvoice || d == DocTypeReceipt
}
