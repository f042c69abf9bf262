// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package utils

import (
	"testing"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}
	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	// two clients must not share one underlying resty client
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	if client1.Client == client2.Client {
		t.Fatal("expected independent *resty.Client instances")
	}
}

func TestHTTPClient_RequestBuilderUsable(t *testing.T) {
	client := NewHTTPClient()

	if client.R() == nil {
		t.Fatal("expected non-nil request from embedded resty client")
	}
}
