package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
)

func TestSendSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("path = %s, want /emails", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "msg-123"})
	}))
	defer srv.Close()

	client := New(Config{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		FromAddress: "news@example.com",
		FromName:    "Example News",
		HTTPClient:  srv.Client(),
	})

	id, err := client.Send(context.Background(), "alice@example.com", dispatch.Message{
		Subject: "October digest",
		Body:    "<p>hello</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id != "msg-123" {
		t.Errorf("id = %q, want msg-123", id)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["from"] != "Example News <news@example.com>" {
		t.Errorf("from = %v", gotBody["from"])
	}
	if gotBody["subject"] != "October digest" {
		t.Errorf("subject = %v", gotBody["subject"])
	}
}

func TestSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, APIKey: "k", FromAddress: "a@b.c", HTTPClient: srv.Client()})

	_, err := client.Send(context.Background(), "not-an-address", dispatch.Message{Subject: "s", Body: "b"})
	if err == nil {
		t.Fatal("want error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "invalid to address") {
		t.Errorf("error should carry status and provider payload, got: %v", err)
	}
}

func TestFormatFrom(t *testing.T) {
	if got := formatFrom("a@b.c", ""); got != "a@b.c" {
		t.Errorf("formatFrom without name = %q", got)
	}
	if got := formatFrom("a@b.c", "Team"); got != "Team <a@b.c>" {
		t.Errorf("formatFrom with name = %q", got)
	}
}
