package domain

import "testing"

func TestNormalizeRecipient(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bob@Example.com", "bob@example.com"},
		{"  a@x.com  ", "a@x.com"},
		{"A@X.COM", "a@x.com"},
		{"already@lower.org", "already@lower.org"},
	}

	for _, tt := range tests {
		if got := NormalizeRecipient(tt.in); got != tt.want {
			t.Errorf("NormalizeRecipient(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidRecipient(t *testing.T) {
	valid := []string{
		"a@x.com",
		"First.Last+tag@sub.domain.org",
		"  Padded@Example.COM ",
		"user_name%x@host.co",
	}
	for _, in := range valid {
		if !ValidRecipient(in) {
			t.Errorf("ValidRecipient(%q) = false, want true", in)
		}
	}

	invalid := []string{
		"",
		"plainstring",
		"@no-local.com",
		"no-domain@",
		"no-tld@host",
		"two@@ats.com",
		"spaces in@side.com",
	}
	for _, in := range invalid {
		if ValidRecipient(in) {
			t.Errorf("ValidRecipient(%q) = true, want false", in)
		}
	}
}

func TestImageRecordIsZero(t *testing.T) {
	if !(ImageRecord{}).IsZero() {
		t.Error("empty record should be zero")
	}
	if (ImageRecord{Reference: "https://images.example/1"}).IsZero() {
		t.Error("record with reference should not be zero")
	}
}
