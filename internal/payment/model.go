package payment

// Status is the settlement state reported on a successful Transaction.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusHolding Status = "Holding"
)

type CreditCard struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Address is the billing address of the card holder. FirstName, LastName and
// Email are pointers so an absent value can be told apart from an empty one.
type Address struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       string  `json:"phone"`
	Address1    string  `json:"address1"`
	Address2    string  `json:"address2"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	CountryCode string  `json:"country_code"`
}

// Payment carries everything a gateway needs to charge a card.
type Payment struct {
	Amount       float64     `json:"amount"`
	CurrencyCode string      `json:"currency_code"`
	Card         *CreditCard `json:"card"`
	Address      *Address    `json:"address"`
	InvoiceID    string      `json:"invoice_id"`
}

type Transaction struct {
	TransactionID string `json:"transaction_id"`
	Code          int    `json:"code"`
	Message       string `json:"message"`
	Status        Status `json:"status"`
}
