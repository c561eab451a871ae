// Copyright (c) 2023 Enver Bisevac
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package httputil provides the transport client: HTTP verbs against a
// base URL returning the decoded body and status of each response.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/enverbisevac/restmodel/errors"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"

	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
)

// ErrEmptyBaseURL is returned by NewClient for an empty base URL.
var ErrEmptyBaseURL = errors.New("httputil: base url must not be empty")

// Client issues requests against a fixed base URL. It holds no per-call
// state and is safe for concurrent use.
type Client struct {
	client *resty.Client
	base   string

	headers        map[string]string
	httpClient     *http.Client
	timeout        time.Duration
	raiseForStatus bool
	requestID      bool
	debug          bool
	logger         *zap.Logger
}

// NewClient creates a client for the base URL. Request URLs are the exact
// concatenation of base and path; no slashes are added or removed.
func NewClient(base string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		base: base,
		headers: map[string]string{
			HeaderContentType: MIMEApplicationJSON,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range options {
		opt.Apply(c)
	}

	if c.httpClient != nil {
		c.client = resty.NewWithClient(c.httpClient)
	} else {
		c.client = resty.New()
	}
	// Calls are independent; cookies persist only in a caller supplied jar.
	if c.httpClient == nil || c.httpClient.Jar == nil {
		c.client.SetCookieJar(nil)
	}
	if c.timeout > 0 {
		c.client.SetTimeout(c.timeout)
	}
	c.client.
		SetLogger(c.logger.Sugar()).
		SetDebug(c.debug).
		SetDisableWarn(true)

	return c, nil
}

// BaseURL returns the base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.base
}

// Headers returns a copy of the default request headers.
func (c *Client) Headers() map[string]string {
	headers := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		headers[k] = v
	}
	return headers
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.client.GetClient().CloseIdleConnections()
}

// Get issues a GET request. params may be nil, url.Values, a string map or
// a struct with `query` tags (see EncodeQuery).
func (c *Client) Get(ctx context.Context, path string, params any, options ...RequestOption) (*Response, error) {
	values, err := EncodeQuery(params)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		options = append([]RequestOption{WithQuery(values)}, options...)
	}
	return c.Do(ctx, http.MethodGet, path, nil, options...)
}

// helper function for making an http POST request.
func (c *Client) Post(ctx context.Context, path string, body any, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, options...)
}

// helper function for making an http PUT request.
func (c *Client) Put(ctx context.Context, path string, body any, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, options...)
}

// helper function for making an http PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body any, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, options...)
}

// helper function for making an http DELETE request.
func (c *Client) Delete(ctx context.Context, path string, body any, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, body, options...)
}

// Do sends a request and decodes the response body. Transport errors are
// returned unchanged. Error statuses are returned as data unless the
// client raises for status, in which case both the response and an
// *errors.ResponseError are returned.
func (c *Client) Do(ctx context.Context, method, path string, body any, options ...RequestOption) (*Response, error) {
	uri := c.base + path

	req := c.client.R().
		SetContext(ctx).
		SetHeaders(c.headers)

	if !isNil(body) {
		payload, contentType, err := encodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, uri, err)
		}
		req.SetBody(payload)
		if contentType != "" {
			req.SetHeader(HeaderContentType, contentType)
		}
	}

	for _, opt := range options {
		opt.Apply(req)
	}

	if c.requestID && req.Header.Get(HeaderRequestID) == "" {
		req.SetHeader(HeaderRequestID, uuid.NewString())
	}

	start := time.Now()
	resp, err := req.Execute(method, uri)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("url", uri),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	r := newResponse(resp.StatusCode(), resp.Header(), resp.Body(), elapsed)

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("url", uri),
		zap.Int("status", r.Status),
		zap.Duration("elapsed", elapsed),
	)

	if c.raiseForStatus && r.Status >= http.StatusBadRequest {
		rerr := errors.FromStatus(r.Status, r.Raw)
		if id := req.Header.Get(HeaderRequestID); id != "" {
			rerr.SetRequestID(id)
		}
		return r, rerr
	}

	return r, nil
}

func isNil(body any) bool {
	if body == nil {
		return true
	}
	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// encodeBody returns the payload to send and the content type it implies.
// An empty content type keeps the client default.
func encodeBody(body any) (any, string, error) {
	switch b := body.(type) {
	case []byte:
		return b, "", nil
	case json.RawMessage:
		return []byte(b), MIMEApplicationJSON, nil
	case string:
		return b, "", nil
	case io.Reader:
		return b, "", nil
	case url.Values:
		return b.Encode(), MIMEApplicationForm, nil
	case *url.Values:
		return b.Encode(), MIMEApplicationForm, nil
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, "", err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), MIMEApplicationJSON, nil
}
