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

// Personalization is the AI-suggested rendering of a reminder e-mail.
type Personalization struct {
	Tone    string `json:"tone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// TimingAdvice is the AI-suggested delivery plan for a customer.
type TimingAdvice struct {
	BestTime  string `json:"best_time"`
	Channel   string `json:"channel"`
	Frequency string `json:"frequency"`
}

// Personalizer enriches reminders with AI-generated copy and timing hints.
// Both methods are advisory: implementations must return usable fallback
// values instead of failing, so the engine behaves identically whether or
// not the endpoint is reachable.
type Personalizer interface {
	PersonalizeEmail(ctx context.Context, customerName, petName string, at time.Time, rt domain.ReminderType) Personalization
	OptimizeNotificationTiming(ctx context.Context, customerName string, at time.Time) TimingAdvice
}

// FallbackPersonalization returns the hard-coded copy used when the AI
// endpoint is unavailable or times out.
func FallbackPersonalization(customerName, petName string, rt domain.ReminderType) Personalization {
	lead := "upcoming"
	switch rt {
	case domain.ReminderToday:
		lead = "today"
	case domain.ReminderTomorrow:
		lead = "tomorrow"
	case domain.ReminderTwoDays:
		lead = "in 2 days"
	}
	return Personalization{
		Tone:    "friendly",
		Subject: fmt.Sprintf("Reminder: %s's appointment %s", petName, lead),
		Message: fmt.Sprintf("Hi %s, this is a reminder that %s has a veterinary appointment %s.", customerName, petName, lead),
	}
}

// FallbackTimingAdvice returns the default delivery plan.
func FallbackTimingAdvice() TimingAdvice {
	return TimingAdvice{BestTime: "09:00", Channel: "email", Frequency: "once"}
}

// HTTPPersonalizer calls an AI text endpoint that returns structured JSON.
// Every failure path degrades to the fallback values; the caller never sees
// an error.
type HTTPPersonalizer struct {
	Endpoint string
	APIKey   string
	// Timeout bounds each call independently of the caller's context.
	// Defaults to 5s.
	Timeout time.Duration
	Client  *http.Client
}

// NewHTTPPersonalizer constructs a personalizer for the given endpoint.
func NewHTTPPersonalizer(endpoint, apiKey string) *HTTPPersonalizer {
	return &HTTPPersonalizer{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Timeout:  5 * time.Second,
		Client:   &http.Client{},
	}
}

// PersonalizeEmail asks the endpoint for tone/subject/message. On any error,
// timeout, or malformed reply it returns FallbackPersonalization.
func (p *HTTPPersonalizer) PersonalizeEmail(ctx context.Context, customerName, petName string, at time.Time, rt domain.ReminderType) Personalization {
	fallback := FallbackPersonalization(customerName, petName, rt)

	var out Personalization
	err := p.call(ctx, "personalize-email", map[string]any{
		"customer_name":  customerName,
		"pet_name":       petName,
		"appointment_at": at.Format(time.RFC3339),
		"reminder_type":  rt,
	}, &out)
	if err != nil || out.Subject == "" || out.Message == "" {
		return fallback
	}
	if out.Tone == "" {
		out.Tone = fallback.Tone
	}
	return out
}

// OptimizeNotificationTiming asks the endpoint for a delivery plan. On any
// failure it returns FallbackTimingAdvice.
func (p *HTTPPersonalizer) OptimizeNotificationTiming(ctx context.Context, customerName string, at time.Time) TimingAdvice {
	var out TimingAdvice
	err := p.call(ctx, "optimize-timing", map[string]any{
		"customer_name":  customerName,
		"appointment_at": at.Format(time.RFC3339),
	}, &out)
	if err != nil || out.BestTime == "" || out.Channel == "" {
		return FallbackTimingAdvice()
	}
	return out
}

// call posts payload to <Endpoint>/<route> and decodes the JSON reply.
func (p *HTTPPersonalizer) call(ctx context.Context, route string, payload map[string]any, out any) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint+"/"+route, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	client := p.Client
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("personalizer returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// StaticPersonalizer always answers with the fallback values. Used when no
// AI endpoint is configured.
type StaticPersonalizer struct{}

// PersonalizeEmail returns FallbackPersonalization.
func (StaticPersonalizer) PersonalizeEmail(_ context.Context, customerName, petName string, _ time.Time, rt domain.ReminderType) Personalization {
	return FallbackPersonalization(customerName, petName, rt)
}

// OptimizeNotificationTiming returns FallbackTimingAdvice.
func (StaticPersonalizer) OptimizeNotificationTiming(context.Context, string, time.Time) TimingAdvice {
	return FallbackTimingAdvice()
}
