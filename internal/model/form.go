package model

// Kind names a family of form records; each kind has its own store.
type Kind string

const (
	KindContact Kind = "contact"
	KindOrder   Kind = "order"
)

// Server-assigned record fields.
const (
	FieldTimestamp = "timestamp"
	FieldOrderID   = "orderId"
)
