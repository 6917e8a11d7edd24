package auth

import (
	"testing"
	"time"
)

// Known-good delivery captured from a sandbox webhook.
const (
	testSecret  = "pdl_ntfset_01k2jjfqx34sdwsvrbj123wxx2_w4C4I+q1LScX16/ODlt39IBfOQo+20fN"
	testPayload = `{"data":{"id":"paymtd_01k2jj1kp58a2w0q2bz6868k7t","type":"card","origin":"subscription","saved_at":"2025-08-13T20:30:50.472214Z","address_id":"add_01k2jj0xcjspzt29qb3qtt5wx6","updated_at":"2025-08-13T20:40:50.668611Z","customer_id":"ctm_01k2jj0xbzdpzbgz0vqv1e0x5e","deletion_reason":"replaced_by_newer_version"},"event_id":"evt_01k2jjm0qdjr26zsz4m48z2efq","event_type":"payment_method.deleted","occurred_at":"2025-08-13T20:40:50.669839Z","notification_id":"ntf_01k2jjm13zz5m5t681nvn0e5hr"}`
	testHeader  = "ts=1755117651;h1=cf519461c15c010f1a82e28afc83b7e8a5fdf1823791050e775badbe0bdcabf7"
)

func TestVerifySignature_KnownDelivery(t *testing.T) {
	if !VerifySignature(testSecret, testHeader, []byte(testPayload), NoMaxAge) {
		t.Error("expected known delivery to verify")
	}

	// Same signature with a shifted timestamp must fail.
	tampered := "ts=1755117661;h1=cf519461c15c010f1a82e28afc83b7e8a5fdf1823791050e775badbe0bdcabf7"
	if VerifySignature(testSecret, tampered, []byte(testPayload), NoMaxAge) {
		t.Error("expected tampered timestamp to fail verification")
	}

	// The delivery is years old; a zero max age must reject it before the HMAC.
	if VerifySignature(testSecret, testHeader, []byte(testPayload), 0) {
		t.Error("expected expired signature to fail with max age 0")
	}
}

func TestVerifySignature_RoundTrip(t *testing.T) {
	secret := "test-secret"
	payload := []byte(`{"event_id":"evt_1","event_type":"price.updated"}`)

	header := BuildSignatureHeader(secret, payload, time.Now())
	if !VerifySignature(secret, header, payload, NoMaxAge) {
		t.Fatal("expected freshly built header to verify")
	}
	if !VerifySignature(secret, header, payload, 60) {
		t.Error("expected fresh signature to pass a 60s age check")
	}

	if VerifySignature("other-secret", header, payload, NoMaxAge) {
		t.Error("expected wrong secret to fail verification")
	}
	mutated := append([]byte(nil), payload...)
	mutated[0] = '['
	if VerifySignature(secret, header, mutated, NoMaxAge) {
		t.Error("expected mutated payload to fail verification")
	}
}

func TestVerifySignature_AgeEnforcement(t *testing.T) {
	secret := "age-secret"
	payload := []byte(`{}`)

	stale := BuildSignatureHeader(secret, payload, time.Now().Add(-time.Second))
	if VerifySignature(secret, stale, payload, 0) {
		t.Error("expected one second old signature to fail with max age 0")
	}

	ancient := BuildSignatureHeader(secret, payload, time.Unix(1, 0))
	if !VerifySignature(secret, ancient, payload, NoMaxAge) {
		t.Error("expected arbitrarily old signature to verify with no max age")
	}
}

func TestVerifySignature_MalformedHeaders(t *testing.T) {
	payload := []byte("payload")
	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"no equals", "garbage"},
		{"no semicolon", "ts=123"},
		{"semicolon before equals", ";ts=123"},
		{"no second equals", "ts=123;h1"},
		{"empty signature", "ts=123;h1="},
		{"non numeric timestamp", "ts=abc;h1=deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifySignature("secret", tt.header, payload, 60) {
				t.Errorf("expected header %q to fail verification", tt.header)
			}
		})
	}
}

func TestVerifySignature_EmptyInputs(t *testing.T) {
	header := BuildSignatureHeader("", nil, time.Now())
	if !VerifySignature("", header, nil, NoMaxAge) {
		t.Error("expected empty secret and payload to round-trip")
	}
	if VerifySignature("secret", header, nil, NoMaxAge) {
		t.Error("expected secret mismatch to fail")
	}
}
