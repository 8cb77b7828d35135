package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
)

func TestFormatNumber(t *testing.T) {
	client := New(Config{CountryCode: "91"})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare ten digits gets country code", "9876543210", "919876543210"},
		{"formatted local number", "98765-43210", "919876543210"},
		{"already has country code", "919876543210", "919876543210"},
		{"plus prefix stripped", "+919876543210", "919876543210"},
		{"spaces and parens stripped", "(987) 654 3210", "919876543210"},
		{"short number left alone", "12345", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.FormatNumber(tt.in); got != tt.want {
				t.Errorf("FormatNumber(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSendSuccess(t *testing.T) {
	var gotPath string
	var gotBody sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages":[{"id":"wamid.test123"}]}`))
	}))
	defer srv.Close()

	client := New(Config{
		BaseURL:       srv.URL,
		AccessToken:   "token",
		PhoneNumberID: "555000",
		CountryCode:   "91",
		HTTPClient:    srv.Client(),
	})

	id, err := client.Send(context.Background(), "9876543210", dispatch.Message{Body: "hello"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id != "wamid.test123" {
		t.Errorf("id = %q, want wamid.test123", id)
	}
	if gotPath != "/555000/messages" {
		t.Errorf("path = %s, want /555000/messages", gotPath)
	}
	if gotBody.MessagingProduct != "whatsapp" || gotBody.Type != "text" {
		t.Errorf("payload = %+v", gotBody)
	}
	if gotBody.To != "919876543210" {
		t.Errorf("to = %q, want the normalized number", gotBody.To)
	}
	if gotBody.Text.Body != "hello" {
		t.Errorf("body = %q", gotBody.Text.Body)
	}
}

func TestSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"recipient not on whatsapp"}}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, PhoneNumberID: "555000", HTTPClient: srv.Client()})

	_, err := client.Send(context.Background(), "919876543210", dispatch.Message{Body: "hi"})
	if err == nil {
		t.Fatal("want error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "recipient not on whatsapp") {
		t.Errorf("error should carry the provider payload, got: %v", err)
	}
}

func TestSendEmptyMessageList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages":[]}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, PhoneNumberID: "555000", HTTPClient: srv.Client()})

	if _, err := client.Send(context.Background(), "919876543210", dispatch.Message{Body: "hi"}); err == nil {
		t.Fatal("want error when the provider returns no message id")
	}
}

func TestGetPhoneNumberInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/555000" {
			t.Errorf("path = %s, want /555000", r.URL.Path)
		}
		w.Write([]byte(`{"id":"555000","verified_name":"VentureScope","display_phone_number":"+91 98765 43210","quality_rating":"GREEN"}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, AccessToken: "token", PhoneNumberID: "555000", HTTPClient: srv.Client()})

	info, err := client.GetPhoneNumberInfo(context.Background())
	if err != nil {
		t.Fatalf("GetPhoneNumberInfo: %v", err)
	}
	if info.VerifiedName != "VentureScope" || info.QualityRating != "GREEN" {
		t.Errorf("info = %+v", info)
	}
}
