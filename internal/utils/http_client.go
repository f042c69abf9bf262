// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so the server adapter can use the full
// resty request API while the rest of the codebase stays decoupled from the
// concrete HTTP library.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an HTTPClient with a freshly configured underlying
// resty client. Each call yields an independent instance with its own
// connection pool; base URL, timeout and default headers are left to the
// caller.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
