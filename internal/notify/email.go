// Package notify holds the clients for the engine's external delivery
// collaborators: the transactional e-mail relay and the AI personalization
// endpoint. Both are consumed as opaque network calls; the engine must keep
// its dedup and delivery guarantees whether or not they are reachable.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// EmailSender delivers an appointment reminder to a customer. Implementations
// are best-effort: a failure must never block the rest of a dispatch tick.
type EmailSender interface {
	SendAppointmentReminder(ctx context.Context, req ReminderEmail) error
}

// ReminderEmail carries everything the relay needs to render and send one
// reminder e-mail. Subject and Message are optional personalized overrides;
// the relay falls back to its own template when they are empty.
type ReminderEmail struct {
	To            string              `json:"to"`
	CustomerName  string              `json:"customer_name"`
	PetName       string              `json:"pet_name"`
	AppointmentAt time.Time           `json:"appointment_at"`
	ReminderType  domain.ReminderType `json:"reminder_type"`
	Subject       string              `json:"subject,omitempty"`
	Message       string              `json:"message,omitempty"`
}

// HTTPEmailSender posts reminder payloads to an HTTP mail relay.
type HTTPEmailSender struct {
	// Endpoint is the full URL of the relay's send route.
	Endpoint string
	// APIKey, when set, is sent as a bearer token.
	APIKey string
	// Client defaults to a client with a 10s timeout.
	Client *http.Client
}

// NewHTTPEmailSender constructs a sender for the given relay endpoint.
func NewHTTPEmailSender(endpoint, apiKey string) *HTTPEmailSender {
	return &HTTPEmailSender{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendAppointmentReminder posts the reminder to the relay and treats any
// non-2xx response as a delivery failure.
func (s *HTTPEmailSender) SendAppointmentReminder(ctx context.Context, req ReminderEmail) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email relay returned %d", resp.StatusCode)
	}
	return nil
}

// NopEmailSender accepts every reminder without sending anything. Used when
// no relay is configured (local development) and in tests.
type NopEmailSender struct{}

// SendAppointmentReminder always succeeds.
func (NopEmailSender) SendAppointmentReminder(context.Context, ReminderEmail) error { return nil }
