package authorize

import "context"

// Endpoint is the base URL of an Authorize.Net environment.
type Endpoint string

const (
	EndpointSandbox    Endpoint = "https://apitest.authorize.net"
	EndpointProduction Endpoint = "https://api2.authorize.net"
)

// Client submits a transaction request to an environment. A nil response with
// a nil error means the vendor answered with nothing usable.
type Client interface {
	Execute(ctx context.Context, endpoint Endpoint, req CreateTransactionRequest) (*CreateTransactionResponse, error)
}
