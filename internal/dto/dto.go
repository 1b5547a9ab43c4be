package dto

type CartItem struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Content  int64  `json:"content"`
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

type CheckoutRequest struct {
	SourceOfFund  string      `json:"source_of_fund"`
	PaymentType   string      `json:"payment_type"`
	Billing       Address     `json:"billing"`
	Shipping      Address     `json:"shipping"`
	CustomerNotes string      `json:"customer_notes"`
	Cart          []*CartItem `json:"cart"`
}

type CheckoutResponse struct {
	OrderID           uint   `json:"order_id"`
	TransactionNumber string `json:"transaction_number"`
	Status            string `json:"status"`
	TotalPrice        int64  `json:"total_price"`
	SnapToken         string `json:"snap_token,omitempty"`
	RedirectURL       string `json:"redirect_url,omitempty"`
}

type SnapTokenResponse struct {
	SnapToken    string `json:"snap_token"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	GrossAmount  int64  `json:"gross_amount"`
	ClientKey    string `json:"client_key"`
	IsProduction bool   `json:"is_production"`
}

type WebhookAck struct {
	Status string `json:"status"`
}
