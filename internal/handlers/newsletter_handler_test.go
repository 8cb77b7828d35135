package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type stubNewsletterStore struct {
	mu          sync.Mutex
	newsletters map[string]*models.Newsletter
}

func (s *stubNewsletterStore) Create(n *models.Newsletter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.newsletters[n.ID] = &cp
	return nil
}

func (s *stubNewsletterStore) GetByID(id string) (*models.Newsletter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.newsletters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *stubNewsletterStore) List(offset, limit int) ([]models.Newsletter, int64, error) {
	return nil, 0, nil
}

func (s *stubNewsletterStore) Update(n *models.Newsletter) error { return nil }

func (s *stubNewsletterStore) Delete(id string) error { return nil }

func (s *stubNewsletterStore) MarkSending(id string, recipientCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newsletters[id].Status = models.CampaignStatusSending
	s.newsletters[id].RecipientCount = recipientCount
	return nil
}

func (s *stubNewsletterStore) UpdateProgress(id string, success, failure int) error { return nil }

func (s *stubNewsletterStore) Finalize(id string, status models.CampaignStatus, success, failure int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newsletters[id].Status = status
	return nil
}

type stubUserSource struct {
	users []models.User
}

func (s *stubUserSource) EligibleNewsletterRecipients() ([]models.User, error) {
	return s.users, nil
}

func (s *stubUserSource) EligibleNewsletterRecipientsByIDs(ids []string) ([]models.User, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.User
	for _, u := range s.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

type countingSender struct {
	mu    sync.Mutex
	sends int
}

func (s *countingSender) Send(_ context.Context, target string, msg dispatch.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sends++
	return "id-" + target, nil
}

func newSendTestRouter(t *testing.T) (*gin.Engine, *stubNewsletterStore, *countingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &stubNewsletterStore{newsletters: map[string]*models.Newsletter{
		"nl-1": {ID: "nl-1", Subject: "s", BodyHTML: "<p>b</p>", Status: models.CampaignStatusDraft},
	}}
	sender := &countingSender{}
	svc := services.NewNewsletterService(store, &stubUserSource{users: []models.User{
		{ID: "u1", Email: "a@example.com", UnsubscribeToken: "tok-a"},
		{ID: "u2", Email: "b@example.com", UnsubscribeToken: "tok-b"},
	}}, sender, dispatch.NopPacer{}, "https://example.com")

	r := gin.New()
	r.POST("/newsletters/:id/send", NewNewsletterHandler(svc).SendNewsletter)
	return r, store, sender
}

func TestSendNewsletterMalformedBodyRejected(t *testing.T) {
	r, store, sender := newSendTestRouter(t)

	// A body that fails to bind must not fall back to the full audience.
	req := httptest.NewRequest(http.MethodPost, "/newsletters/nl-1/send", strings.NewReader(`{"user_ids": 42}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	sender.mu.Lock()
	sends := sender.sends
	sender.mu.Unlock()
	if sends != 0 {
		t.Errorf("provider invoked %d times, want none", sends)
	}
	n, _ := store.GetByID("nl-1")
	if n.Status != models.CampaignStatusDraft {
		t.Errorf("status = %s, want draft untouched", n.Status)
	}
}

func TestSendNewsletterEmptyBodyTargetsAll(t *testing.T) {
	r, store, _ := newSendTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/newsletters/nl-1/send", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202, body %s", w.Code, w.Body.String())
	}
	n, _ := store.GetByID("nl-1")
	if n.RecipientCount != 2 {
		t.Errorf("recipient count = %d, want the full audience", n.RecipientCount)
	}
}

func TestSendNewsletterSubsetBody(t *testing.T) {
	r, store, _ := newSendTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/newsletters/nl-1/send", strings.NewReader(`{"user_ids": ["u2"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202, body %s", w.Code, w.Body.String())
	}
	n, _ := store.GetByID("nl-1")
	if n.RecipientCount != 1 {
		t.Errorf("recipient count = %d, want 1", n.RecipientCount)
	}
}
