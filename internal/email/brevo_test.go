package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"innovision/internal/qerrors"

	"github.com/stretchr/testify/assert"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		apiKey:      "test-key",
		senderName:  "Innovision",
		senderEmail: "noreply@innovision.app",
		appURL:      "https://innovision.app",
		baseURL:     baseURL,
		httpClient:  http.DefaultClient,
	}
}

func TestSendEmailEnvelope(t *testing.T) {
	var got sendEmailRequest
	var gotPath, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"1"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	err := client.SendEmail("user@example.com", "Hello", "<p>Hi</p>", "Hi")

	assert.NoError(t, err)
	assert.Equal(t, "/smtp/email", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Innovision", got.Sender.Name)
	assert.Equal(t, "noreply@innovision.app", got.Sender.Email)
	assert.Equal(t, []recipient{{Email: "user@example.com"}}, got.To)
	assert.Equal(t, "Hello", got.Subject)
	assert.Equal(t, "<p>Hi</p>", got.HTMLContent)
	assert.Equal(t, "Hi", got.TextContent)
}

func TestSendEmailAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid sender"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendEmail("user@example.com", "Hello", "<p>Hi</p>", "Hi")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sender")
}

func TestSendEmailStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendEmail("user@example.com", "Hello", "<p>Hi</p>", "Hi")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSendEmailMissingKey(t *testing.T) {
	client := newTestClient("http://unused")
	client.apiKey = ""

	err := client.SendEmail("user@example.com", "Hello", "<p>Hi</p>", "Hi")
	assert.Equal(t, qerrors.EmailSendError, err)
}

func TestSendCourseCompletionEmail(t *testing.T) {
	var got sendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendCourseCompletionEmail("user@example.com", "", "Go Basics")

	assert.NoError(t, err)
	assert.Contains(t, got.Subject, "Go Basics")
	// A user without a display name is greeted generically.
	assert.Contains(t, got.HTMLContent, "Hi Learner,")
	assert.Contains(t, got.HTMLContent, "Go Basics")
	assert.Contains(t, got.HTMLContent, "https://innovision.app/roadmap")
}

func TestSendInactivityReminderEmail(t *testing.T) {
	var got sendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendInactivityReminderEmail("user@example.com", "Ada", "Go Basics")

	assert.NoError(t, err)
	assert.Contains(t, got.Subject, "Go Basics")
	assert.Contains(t, got.HTMLContent, "Hi Ada,")
	assert.Contains(t, got.TextContent, "Go Basics")
}
