package authorize

import (
	"strconv"
	"strings"

	"authorize-gateway/internal/payment"
)

const (
	ResultCodeOK = "Ok"

	// responseCodeApproved is the transaction response code for an approved charge.
	responseCodeApproved = 1

	msgNoResponse    = "No response received from the API."
	msgPaymentFailed = "Failed processing the payment!"
)

type CreateTransactionResponse struct {
	TransactionResponse *TransactionResponse `json:"transactionResponse,omitempty"`
	RefID               string               `json:"refId,omitempty"`
	Messages            Messages             `json:"messages"`
}

type Messages struct {
	ResultCode string    `json:"resultCode"`
	Message    []Message `json:"message"`
}

type Message struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type TransactionResponse struct {
	ResponseCode  string               `json:"responseCode"`
	AuthCode      string               `json:"authCode,omitempty"`
	TransID       string               `json:"transId"`
	RefTransID    string               `json:"refTransID,omitempty"`
	AccountNumber string               `json:"accountNumber,omitempty"`
	AccountType   string               `json:"accountType,omitempty"`
	Messages      []TransactionMessage `json:"messages,omitempty"`
	Errors        []TransactionError   `json:"errors,omitempty"`
}

type TransactionMessage struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type TransactionError struct {
	ErrorCode string `json:"errorCode"`
	ErrorText string `json:"errorText"`
}

// interpret turns a vendor response into a Result. The first entry of any
// error or message list wins.
func interpret(resp *CreateTransactionResponse) payment.Result {
	if resp == nil {
		return payment.Failed(payment.CodeError, msgNoResponse)
	}

	tr := resp.TransactionResponse

	if resp.Messages.ResultCode != ResultCodeOK {
		return payment.Failed(payment.CodeError, failureText(resp))
	}

	if tr == nil {
		return payment.Failed(payment.CodeError, msgPaymentFailed)
	}

	code, err := strconv.Atoi(strings.TrimSpace(tr.ResponseCode))
	if err != nil || code != responseCodeApproved {
		return payment.Failed(payment.CodeError, msgPaymentFailed)
	}

	var message string
	if len(tr.Messages) > 0 {
		message = tr.Messages[0].Description
	}

	return payment.Succeeded(payment.Transaction{
		TransactionID: tr.TransID,
		Code:          code,
		Message:       message,
	})
}

func failureText(resp *CreateTransactionResponse) string {
	if tr := resp.TransactionResponse; tr != nil && len(tr.Errors) > 0 {
		return tr.Errors[0].ErrorText
	}
	if len(resp.Messages.Message) > 0 {
		return resp.Messages.Message[0].Text
	}
	return ""
}
