package payment_gateway

import (
	"context"
	"io"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxProviderResponseBytes = 1 << 20

// providerClient sends paced, time-bounded requests to one payment provider.
type providerClient struct {
	Provider   string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Timeout    time.Duration
	Log        *zap.Logger
}

func newProviderClient(provider string, timeout time.Duration, requestsPerSecond int, logger *zap.Logger) *providerClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &providerClient{
		Provider:   provider,
		HTTPClient: &http.Client{},
		Limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		Timeout:    timeout,
		Log:        logger,
	}
}

// pace bounds ctx by the per-call timeout and waits for an outbound slot.
// The returned cancel func must be called once the call is done.
func (c *providerClient) pace(ctx context.Context) (context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	if err := c.Limiter.Wait(ctx); err != nil {
		cancel()
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		c.Log.Error("providerClient.pace outbound limiter wait failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentProviderKey, c.Provider),
			zap.Error(err),
		)
		return nil, nil, exceptions.ErrSendHTTPRequest(err)
	}
	return ctx, cancel, nil
}

// do executes the request built by newRequest and returns the body of a 2xx response.
func (c *providerClient) do(ctx context.Context, newRequest func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	ctx, cancel, err := c.pace(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	req, err := newRequest(ctx)
	if err != nil {
		c.Log.Error("providerClient.do error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentProviderKey, c.Provider),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("providerClient.do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentProviderKey, c.Provider),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderResponseBytes))
	if err != nil {
		c.Log.Error("providerClient.do error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentProviderKey, c.Provider),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Error("providerClient.do provider returned non-2xx status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentProviderKey, c.Provider),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString("response_body", body),
		)
		return nil, exceptions.ErrPaymentProviderBadStatus(nil, c.Provider, resp.StatusCode)
	}

	return body, nil
}
