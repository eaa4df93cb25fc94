package payment

// Error codes returned by gateways.
const (
	CodeInvalidPublicKey  = "invalid_public_key"
	CodeInvalidPrivateKey = "invalid_private_key"
	CodeInvalidAmount     = "invalid_amount"
	CodeInvalidCard       = "invalid_card"
	CodeInvalidAddress    = "invalid_address"
	CodeError             = "error"
)

// Error is a failed payment outcome. It is a value, never thrown.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// IsInputError reports whether the error was raised by local validation,
// before any vendor call.
func (e *Error) IsInputError() bool {
	switch e.Code {
	case CodeInvalidPublicKey, CodeInvalidPrivateKey, CodeInvalidAmount, CodeInvalidCard, CodeInvalidAddress:
		return true
	}
	return false
}
