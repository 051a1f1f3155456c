package crm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientCreateSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"lead-123"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key")
	id, err := client.Create(context.Background(), Lead{
		Name: "John", Email: "j@x.com", Source: "Import", Status: "new",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if id != "lead-123" {
		t.Errorf("id = %q, want %q", id, "lead-123")
	}
	if gotPath != "/v1/leads" {
		t.Errorf("path = %q, want /v1/leads", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("auth = %q, want bearer token", gotAuth)
	}
	if gotBody["name"] != "John" || gotBody["status"] != "new" {
		t.Errorf("request body = %v, want lead fields", gotBody)
	}
}

func TestClientCreateEntityPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"x"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")

	tests := []struct {
		rec  Record
		want string
	}{
		{Customer{Name: "M", Email: "m@x.com", Status: "active"}, "/v1/customers"},
		{Contract{Title: "Deal", CustomerName: "M", Value: 1, Status: "draft"}, "/v1/contracts"},
	}
	for _, tt := range tests {
		if _, err := client.Create(context.Background(), tt.rec); err != nil {
			t.Fatalf("Create(%T) error = %v", tt.rec, err)
		}
		if gotPath != tt.want {
			t.Errorf("path = %q, want %q", gotPath, tt.want)
		}
	}
}

func TestClientCreateErrorClassification(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		wantValidation bool
		wantMessage    string
	}{
		{
			name:           "400 is a validation error",
			status:         http.StatusBadRequest,
			body:           `{"error":"email is malformed"}`,
			wantValidation: true,
			wantMessage:    "email is malformed",
		},
		{
			name:           "422 is a validation error",
			status:         http.StatusUnprocessableEntity,
			body:           `{"error":"status not allowed"}`,
			wantValidation: true,
			wantMessage:    "status not allowed",
		},
		{
			name:        "500 is a network error",
			status:      http.StatusInternalServerError,
			body:        `{"error":"boom"}`,
			wantMessage: "boom",
		},
		{
			name:        "non-JSON error body",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable",
			wantMessage: "upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "").Create(context.Background(), Lead{Name: "J", Email: "e"})
			if err == nil {
				t.Fatal("Create() error = nil")
			}

			var vErr *ValidationError
			var nErr *NetworkError
			switch {
			case tt.wantValidation:
				if !errors.As(err, &vErr) {
					t.Fatalf("error = %T, want *ValidationError", err)
				}
				if vErr.Message != tt.wantMessage {
					t.Errorf("message = %q, want %q", vErr.Message, tt.wantMessage)
				}
			default:
				if !errors.As(err, &nErr) {
					t.Fatalf("error = %T, want *NetworkError", err)
				}
				if !strings.Contains(nErr.Error(), tt.wantMessage) {
					t.Errorf("error = %q, want mention of %q", nErr.Error(), tt.wantMessage)
				}
			}
		})
	}
}

func TestClientCreateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: connections will be refused

	_, err := NewClient(srv.URL, "").Create(context.Background(), Lead{Name: "J", Email: "e"})
	var nErr *NetworkError
	if !errors.As(err, &nErr) {
		t.Fatalf("error = %T, want *NetworkError", err)
	}
}

func TestClientCreateMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an id"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Create(context.Background(), Lead{Name: "J", Email: "e"})
	var nErr *NetworkError
	if !errors.As(err, &nErr) {
		t.Fatalf("error = %T, want *NetworkError for missing id", err)
	}
}
