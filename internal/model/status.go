package model

// OrderStatus is the single canonical status vocabulary. External gateway
// strings are translated onto it at the webhook boundary and never stored.
type OrderStatus string

const (
	StatusCreated    OrderStatus = "created"
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusPaid       OrderStatus = "paid"
	StatusChallenged OrderStatus = "challenged"
	StatusCancelled  OrderStatus = "cancelled"
	StatusExpired    OrderStatus = "expired"
)

// Terminal reports whether no further transitions may leave s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}
