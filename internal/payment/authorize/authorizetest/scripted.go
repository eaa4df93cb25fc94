// Package authorizetest provides a deterministic authorize.Client for tests.
package authorizetest

import (
	"context"
	"errors"
	"sync"

	"authorize-gateway/internal/payment/authorize"
)

var ErrScriptExhausted = errors.New("authorizetest: no scripted reply left")

type reply struct {
	resp *authorize.CreateTransactionResponse
	err  error
}

// Call is one request received by a ScriptedClient.
type Call struct {
	Endpoint authorize.Endpoint
	Request  authorize.CreateTransactionRequest
}

// ScriptedClient replays queued replies in order. When Repeat is set the last
// reply is replayed once the queue runs dry.
type ScriptedClient struct {
	Repeat bool

	mu      sync.Mutex
	replies []reply
	last    *reply
	calls   []Call
}

func NewScriptedClient() *ScriptedClient {
	return &ScriptedClient{}
}

func (c *ScriptedClient) Respond(resp *authorize.CreateTransactionResponse) *ScriptedClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, reply{resp: resp})
	return c
}

func (c *ScriptedClient) Fail(err error) *ScriptedClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, reply{err: err})
	return c
}

func (c *ScriptedClient) Execute(_ context.Context, endpoint authorize.Endpoint, req authorize.CreateTransactionRequest) (*authorize.CreateTransactionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, Call{Endpoint: endpoint, Request: req})

	if len(c.replies) == 0 {
		if c.Repeat && c.last != nil {
			return c.last.resp, c.last.err
		}
		return nil, ErrScriptExhausted
	}

	r := c.replies[0]
	c.replies = c.replies[1:]
	c.last = &r
	return r.resp, r.err
}

func (c *ScriptedClient) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// Approved is a successful vendor reply for transID.
func Approved(transID, description string) *authorize.CreateTransactionResponse {
	return &authorize.CreateTransactionResponse{
		TransactionResponse: &authorize.TransactionResponse{
			ResponseCode: "1",
			TransID:      transID,
			Messages: []authorize.TransactionMessage{
				{Code: "1", Description: description},
			},
		},
		Messages: authorize.Messages{
			ResultCode: authorize.ResultCodeOK,
			Message:    []authorize.Message{{Code: "I00001", Text: "Successful."}},
		},
	}
}

// Declined is an "Ok" reply whose transaction was not approved.
func Declined(responseCode string) *authorize.CreateTransactionResponse {
	return &authorize.CreateTransactionResponse{
		TransactionResponse: &authorize.TransactionResponse{ResponseCode: responseCode},
		Messages:            authorize.Messages{ResultCode: authorize.ResultCodeOK},
	}
}

// Rejected is an "Error" reply carrying top-level messages and, optionally,
// transaction errors.
func Rejected(messages []string, errorTexts ...string) *authorize.CreateTransactionResponse {
	resp := &authorize.CreateTransactionResponse{
		TransactionResponse: &authorize.TransactionResponse{},
		Messages:            authorize.Messages{ResultCode: "Error"},
	}
	for _, m := range messages {
		resp.Messages.Message = append(resp.Messages.Message, authorize.Message{Code: "E00027", Text: m})
	}
	for _, t := range errorTexts {
		resp.TransactionResponse.Errors = append(resp.TransactionResponse.Errors, authorize.TransactionError{ErrorCode: "2", ErrorText: t})
	}
	return resp
}
