package authorize

import (
	"context"
	"fmt"
	"math"
	"sync"

	"authorize-gateway/internal/logger"
	"authorize-gateway/internal/payment"

	"go.uber.org/zap"
)

const msgInvalidTransactionID = "Invalid transaction ID."

// Config holds the merchant credentials and mode flags of a Gateway.
type Config struct {
	PublicKey  string
	PrivateKey string
	Live       bool
	Capture    bool
}

// Gateway charges cards through Authorize.Net.
//
// A Gateway is not safe for concurrent use: the transaction and reference ids
// are per-instance state carried from an authorize-only call to its capture.
type Gateway struct {
	cfg           Config
	transactionID string
	referenceID   string
	client        Client
}

var _ payment.Gateway = (*Gateway)(nil)

type Option func(*Gateway)

func WithClient(c Client) Option {
	return func(g *Gateway) { g.client = c }
}

func WithCaptureMode(capture bool) Option {
	return func(g *Gateway) { g.cfg.Capture = capture }
}

func New(publicKey, privateKey string, live bool, opts ...Option) *Gateway {
	g := &Gateway{
		cfg: Config{
			PublicKey:  publicKey,
			PrivateKey: privateKey,
			Live:       live,
			Capture:    true,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ----------------- Process -----------------

// Process authorizes the payment and, in capture mode, captures it in the
// same call. Validation failures return before any vendor call.
func (g *Gateway) Process(ctx context.Context, p payment.Payment) payment.Result {
	if verr := g.validate(p); verr != nil {
		logger.FromCtx(ctx).Info("payment rejected",
			zap.String("code", verr.Code),
			zap.String("reason", verr.Message),
		)
		return payment.FromError(verr)
	}

	res := g.submit(ctx, newChargeRequest(p, g.cfg.Capture))
	if res.IsError() {
		return res
	}

	status := payment.StatusHolding
	if g.cfg.Capture {
		status = payment.StatusPaid
	}
	return res.WithStatus(status)
}

// ----------------- Capture -----------------

// Capture settles the previously authorized transaction stored on the gateway.
func (g *Gateway) Capture(ctx context.Context) payment.Result {
	if g.transactionID == "" {
		return payment.Failed(payment.CodeError, msgInvalidTransactionID)
	}

	res := g.submit(ctx, newCaptureRequest(g.transactionID))
	if res.IsError() {
		return res
	}
	return res.WithStatus(payment.StatusPaid)
}

// ----------------- Submit -----------------

func (g *Gateway) submit(ctx context.Context, tr TransactionRequest) payment.Result {
	req := newEnvelope(g.cfg, g.referenceID, tr)
	endpoint := g.Endpoint()

	log := logger.FromCtx(ctx).With(
		zap.String("transaction_type", tr.TransactionType),
		zap.String("endpoint", string(endpoint)),
		zap.String("ref_id", g.referenceID),
	)
	if tr.Payment != nil {
		log = log.With(zap.String("card", logger.MaskCardNumber(tr.Payment.CreditCard.CardNumber)))
	}

	resp, err := execute(ctx, g.Client(), endpoint, req)
	if err != nil {
		log.Error("transaction request failed", zap.Error(err))
		return payment.Failed(payment.CodeError, err.Error())
	}

	res := interpret(resp)
	if res.IsError() {
		log.Warn("transaction declined", zap.String("reason", res.Err().Message))
		return res
	}

	tx := res.Transaction()
	g.transactionID = tx.TransactionID

	log.Info("transaction approved",
		zap.String("transaction_id", tx.TransactionID),
		zap.Int("response_code", tx.Code),
	)
	return res
}

// execute shields the caller from panics raised inside a client.
func execute(ctx context.Context, c Client, endpoint Endpoint, req CreateTransactionRequest) (resp *CreateTransactionResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return c.Execute(ctx, endpoint, req)
}

func (g *Gateway) validate(p payment.Payment) *payment.Error {
	if g.cfg.PublicKey == "" {
		return payment.NewError(payment.CodeInvalidPublicKey, "Invalid public key.")
	}

	if g.cfg.PrivateKey == "" {
		return payment.NewError(payment.CodeInvalidPrivateKey, "Invalid private key.")
	}

	// the vendor receives the amount rounded to cents
	if !(p.Amount > 0) || math.IsInf(p.Amount, 1) || formatAmount(p.Amount) == formatAmount(0) {
		return payment.NewError(payment.CodeInvalidAmount, "Invalid amount.")
	}

	if p.Card == nil {
		return payment.NewError(payment.CodeInvalidCard, "Invalid credit card.")
	}

	a := p.Address
	if a == nil || a.FirstName == nil || a.LastName == nil || a.Email == nil {
		return payment.NewError(payment.CodeInvalidAddress, "Invalid billing address.")
	}

	return nil
}

// ----------------- Accessors -----------------

func (g *Gateway) PublicKey() string { return g.cfg.PublicKey }

func (g *Gateway) SetPublicKey(key string) *Gateway {
	g.cfg.PublicKey = key
	return g
}

func (g *Gateway) PrivateKey() string { return g.cfg.PrivateKey }

func (g *Gateway) SetPrivateKey(key string) *Gateway {
	g.cfg.PrivateKey = key
	return g
}

func (g *Gateway) IsLive() bool { return g.cfg.Live }

func (g *Gateway) SetLive(live bool) *Gateway {
	g.cfg.Live = live
	return g
}

func (g *Gateway) CaptureMode() bool { return g.cfg.Capture }

func (g *Gateway) SetCaptureMode(capture bool) *Gateway {
	g.cfg.Capture = capture
	return g
}

func (g *Gateway) TransactionID() string { return g.transactionID }

func (g *Gateway) SetTransactionID(id string) *Gateway {
	g.transactionID = id
	return g
}

func (g *Gateway) ReferenceID() string { return g.referenceID }

func (g *Gateway) SetReferenceID(id string) *Gateway {
	g.referenceID = id
	return g
}

// Client returns the injected client, falling back to the shared HTTP client.
func (g *Gateway) Client() Client {
	if g.client == nil {
		return defaultClient()
	}
	return g.client
}

func (g *Gateway) SetClient(c Client) *Gateway {
	g.client = c
	return g
}

func (g *Gateway) Endpoint() Endpoint {
	if g.cfg.Live {
		return EndpointProduction
	}
	return EndpointSandbox
}

var (
	sharedClient     *HTTPClient
	sharedClientOnce sync.Once
)

func defaultClient() Client {
	sharedClientOnce.Do(func() {
		sharedClient = NewHTTPClient(defaultTimeout)
	})
	return sharedClient
}
