package httputil

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ClientOption configures a Client.
type ClientOption interface {
	Apply(*Client)
}

// ClientOptionFunc is a function that configures a client.
type ClientOptionFunc func(*Client)

// Apply calls f(client).
func (f ClientOptionFunc) Apply(client *Client) {
	f(client)
}

// WithHTTPClient sets the underlying http client, e.g. one built with
// golang.org/x/oauth2 or a custom transport.
func WithHTTPClient(value *http.Client) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		c.httpClient = value
	})
}

// WithTimeout sets the overall request timeout. Zero means no timeout.
func WithTimeout(value time.Duration) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		c.timeout = value
	})
}

// WithHeader sets a default request header.
func WithHeader(key, value string) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		c.headers[http.CanonicalHeaderKey(key)] = value
	})
}

// WithHeaders merges default request headers; later values win.
func WithHeaders(headers map[string]string) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		for k, v := range headers {
			c.headers[http.CanonicalHeaderKey(k)] = v
		}
	})
}

// WithRaiseForStatus makes responses with status >= 400 return an
// *errors.ResponseError next to the response.
func WithRaiseForStatus(value bool) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		c.raiseForStatus = value
	})
}

// WithRequestID adds a random X-Request-ID header to requests that do not
// carry one.
func WithRequestID(value bool) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		c.requestID = value
	})
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(value *zap.Logger) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		if value != nil {
			c.logger = value
		}
	})
}

// WithDebug enables resty's request/response dump through the logger.
func WithDebug(value bool) ClientOption {
	return ClientOptionFunc(func(c *Client) {
		c.debug = value
	})
}

// RequestOption configures a single request.
type RequestOption interface {
	Apply(*resty.Request)
}

// RequestOptionFunc is a function that configures a request.
type RequestOptionFunc func(*resty.Request)

// Apply calls f(request).
func (f RequestOptionFunc) Apply(request *resty.Request) {
	f(request)
}

// WithRequestHeader sets a header on a single request.
func WithRequestHeader(key, value string) RequestOption {
	return RequestOptionFunc(func(r *resty.Request) {
		r.SetHeader(key, value)
	})
}

// WithRequestHeaders sets headers on a single request, overriding the
// client defaults.
func WithRequestHeaders(headers map[string]string) RequestOption {
	return RequestOptionFunc(func(r *resty.Request) {
		r.SetHeaders(headers)
	})
}

// WithQuery adds query parameters to a single request.
func WithQuery(values url.Values) RequestOption {
	return RequestOptionFunc(func(r *resty.Request) {
		r.SetQueryParamsFromValues(values)
	})
}
