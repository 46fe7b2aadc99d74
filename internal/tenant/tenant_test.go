package tenant

import (
	"errors"
	"testing"
)

func TestFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"frontdesk@happypaws.example", "frontdesk"},
		{"Front.Desk@HappyPaws.example", "front.desk"},
		{"  admin@clinic.io  ", "admin"},
		{"vet+oncall@clinic.io", "vetoncall"},
	}
	for _, tc := range cases {
		got, err := FromEmail(tc.email)
		if err != nil {
			t.Fatalf("FromEmail(%q) error: %v", tc.email, err)
		}
		if got != tc.want {
			t.Fatalf("FromEmail(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestFromEmail_Invalid(t *testing.T) {
	for _, email := range []string{"", "no-at-sign", "@clinic.io", "++@clinic.io"} {
		if _, err := FromEmail(email); !errors.Is(err, ErrNoTenant) {
			t.Fatalf("FromEmail(%q): want ErrNoTenant, got %v", email, err)
		}
	}
}

func TestResolve_ExplicitWins(t *testing.T) {
	got, err := Resolve("Clinic-7", "frontdesk@happypaws.example")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "clinic-7" {
		t.Fatalf("Resolve = %q, want clinic-7", got)
	}
}

func TestResolve_ExplicitMustBeSlug(t *testing.T) {
	if _, err := Resolve("bad slug!", "frontdesk@happypaws.example"); !errors.Is(err, ErrNoTenant) {
		t.Fatalf("want ErrNoTenant for invalid explicit id, got %v", err)
	}
}

func TestResolve_FallsBackToEmail(t *testing.T) {
	got, err := Resolve("", "frontdesk@happypaws.example")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "frontdesk" {
		t.Fatalf("Resolve = %q, want frontdesk", got)
	}
}

func TestResolve_NoIdentity(t *testing.T) {
	if _, err := Resolve("", ""); !errors.Is(err, ErrNoTenant) {
		t.Fatalf("want ErrNoTenant, got %v", err)
	}
}
