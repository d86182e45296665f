package entity

// Sequence is a named monotonic counter backing document references
// such as QT-000007 or INV-000103.
type Sequence struct {
	Name  string `gorm:"size:50;primary_key" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}

// TableName returns the table name for the Sequence model
func (Sequence) TableName() string {
	return "sequences"
}

// Sequence names used across the document services.
const (
	SequenceQuote         = "quote"
	SequenceInvoice       = "invoice"
	SequencePurchaseOrder = "purchase_order"
)
