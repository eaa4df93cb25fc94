package authorize

import (
	"strconv"

	"authorize-gateway/internal/payment"
	"authorize-gateway/internal/utils"
)

const (
	TypeAuthCapture      = "authCaptureTransaction"
	TypeAuthOnly         = "authOnlyTransaction"
	TypePriorAuthCapture = "priorAuthCaptureTransaction"

	settingDuplicateWindow = "duplicateWindow"
	duplicateWindowSeconds = "60"
	customerIndividual     = "individual"
)

// Field order follows the vendor schema; the JSON API rejects out-of-order elements.

type CreateTransactionRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	TransactionRequest     TransactionRequest     `json:"transactionRequest"`
}

type MerchantAuthentication struct {
	Name           string `json:"name"`
	TransactionKey string `json:"transactionKey"`
}

type TransactionRequest struct {
	TransactionType     string               `json:"transactionType"`
	Amount              string               `json:"amount,omitempty"`
	CurrencyCode        string               `json:"currencyCode,omitempty"`
	Payment             *PaymentInstruction  `json:"payment,omitempty"`
	RefTransID          string               `json:"refTransId,omitempty"`
	Order               *Order               `json:"order,omitempty"`
	Customer            *Customer            `json:"customer,omitempty"`
	BillTo              *BillTo              `json:"billTo,omitempty"`
	TransactionSettings *TransactionSettings `json:"transactionSettings,omitempty"`
}

type PaymentInstruction struct {
	CreditCard CreditCard `json:"creditCard"`
}

type CreditCard struct {
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CardCode       string `json:"cardCode"`
}

type Order struct {
	InvoiceNumber string `json:"invoiceNumber"`
}

type Customer struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

type BillTo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type TransactionSettings struct {
	Setting []Setting `json:"setting"`
}

type Setting struct {
	SettingName  string `json:"settingName"`
	SettingValue string `json:"settingValue"`
}

// newChargeRequest builds the authorize (and optionally capture) instruction
// for a validated payment.
func newChargeRequest(p payment.Payment, capture bool) TransactionRequest {
	txType := TypeAuthOnly
	if capture {
		txType = TypeAuthCapture
	}

	card := p.Card
	address := p.Address

	req := TransactionRequest{
		TransactionType: txType,
		Amount:          formatAmount(p.Amount),
		CurrencyCode:    p.CurrencyCode,
		Payment: &PaymentInstruction{
			CreditCard: CreditCard{
				CardNumber:     card.Number,
				ExpirationDate: card.Expiry,
				CardCode:       card.CVV,
			},
		},
		Customer: &Customer{
			Type:  customerIndividual,
			Email: utils.PtrString(address.Email),
		},
		BillTo: &BillTo{
			FirstName:   utils.PtrString(address.FirstName),
			LastName:    utils.PtrString(address.LastName),
			Address:     fullAddress(address.Address1, address.Address2),
			State:       address.State,
			Zip:         address.Zip,
			Country:     address.CountryCode,
			PhoneNumber: address.Phone,
			Email:       utils.PtrString(address.Email),
		},
	}

	if p.InvoiceID != "" {
		req.Order = &Order{InvoiceNumber: p.InvoiceID}
	}

	return req
}

func newCaptureRequest(transactionID string) TransactionRequest {
	return TransactionRequest{
		TransactionType: TypePriorAuthCapture,
		RefTransID:      transactionID,
	}
}

// newEnvelope wraps a transaction instruction with credentials, the
// duplicate window setting and the optional reference id.
func newEnvelope(cfg Config, refID string, tr TransactionRequest) CreateTransactionRequest {
	tr.TransactionSettings = &TransactionSettings{
		Setting: []Setting{{
			SettingName:  settingDuplicateWindow,
			SettingValue: duplicateWindowSeconds,
		}},
	}

	return CreateTransactionRequest{
		MerchantAuthentication: MerchantAuthentication{
			Name:           cfg.PublicKey,
			TransactionKey: cfg.PrivateKey,
		},
		RefID:              refID,
		TransactionRequest: tr,
	}
}

func fullAddress(line1, line2 string) string {
	if line2 == "" {
		return line1
	}
	if line1 == "" {
		return line2
	}
	return line1 + ", " + line2
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
