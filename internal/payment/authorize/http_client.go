package authorize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"authorize-gateway/internal/logger"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	apiPath        = "/xml/v1/request.api"
	defaultTimeout = 30 * time.Second

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

var (
	ErrEmptyResponse    = errors.New("empty response body")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// utf8BOM prefixes every JSON body the vendor sends back.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// callerAbortError marks a failure caused by the caller's own context ending.
// The breaker does not count it against the vendor.
type callerAbortError struct {
	err error
}

func (e *callerAbortError) Error() string { return e.err.Error() }

func (e *callerAbortError) Unwrap() error { return e.err }

type envelope struct {
	CreateTransactionRequest CreateTransactionRequest `json:"createTransactionRequest"`
}

// HTTPClient talks to the Authorize.Net JSON API. It is safe for concurrent use.
type HTTPClient struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "authorize.net",
			Timeout: breakerCooldown,
			IsSuccessful: func(err error) bool {
				var abort *callerAbortError
				return err == nil || errors.As(err, &abort)
			},
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.L().Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

func (c *HTTPClient) Execute(ctx context.Context, endpoint Endpoint, req CreateTransactionRequest) (*CreateTransactionResponse, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		res, err := c.do(ctx, endpoint, req)
		if err != nil && ctx.Err() != nil {
			return nil, &callerAbortError{err: err}
		}
		return res, err
	})
	if err != nil {
		return nil, err
	}
	return asResponse(out)
}

func asResponse(out interface{}) (*CreateTransactionResponse, error) {
	res, ok := out.(*CreateTransactionResponse)
	if !ok || res == nil {
		return nil, ErrEmptyResponse
	}
	return res, nil
}

func (c *HTTPClient) do(ctx context.Context, endpoint Endpoint, req CreateTransactionRequest) (*CreateTransactionResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("endpoint", string(endpoint)),
		zap.String("transaction_type", req.TransactionRequest.TransactionType),
		zap.String("merchant", logger.MaskSecret(req.MerchantAuthentication.Name)),
	)

	jsonBody, err := json.Marshal(envelope{CreateTransactionRequest: req})
	if err != nil {
		log.Error("Failed to marshal transaction request", zap.Error(err))
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, string(endpoint)+apiPath, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}
	httpReq.Header.Add("Content-Type", "application/json")

	log.Debug("Sending transaction request to Authorize.Net")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error("Authorize.Net request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read authorize.net response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Authorize.Net returned non-success status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	bodyBytes = bytes.TrimPrefix(bodyBytes, utf8BOM)
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		log.Error("Authorize.Net returned an empty body")
		return nil, ErrEmptyResponse
	}

	var res CreateTransactionResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding Authorize.Net response", zap.Error(err))
		return nil, err
	}

	log.Debug("Authorize.Net responded", zap.String("result_code", res.Messages.ResultCode))

	return &res, nil
}
