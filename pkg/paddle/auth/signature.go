// Package auth implements Paddle webhook signature verification.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the HTTP header carrying the webhook signature.
const SignatureHeader = "Paddle-Signature"

// NoMaxAge disables the signature age check.
const NoMaxAge = -1

// VerifySignature checks a Paddle-Signature header against the raw request
// body. The header has the form "ts=<unix-seconds>;h1=<hex-hmac>": the
// timestamp is the substring between the first '=' and the first ';', the
// signature is everything after the second '='. The signed payload is
// "<timestamp>:<payload>" and the signature is HMAC-SHA256 keyed by the
// endpoint secret, hex encoded.
//
// When maxAgeSeconds >= 0, signatures older than that are rejected before any
// HMAC is computed; pass NoMaxAge to accept any timestamp. Malformed headers
// and non-numeric timestamps fail verification, they never panic.
//
// https://developer.paddle.com/webhooks/signature-verification#verify-manually
func VerifySignature(secret string, signatureHeader string, payload []byte, maxAgeSeconds int) bool {
	firstEqual := strings.IndexByte(signatureHeader, '=')
	if firstEqual < 0 {
		return false
	}
	firstSemicolon := strings.IndexByte(signatureHeader, ';')
	if firstSemicolon < 0 || firstSemicolon < firstEqual {
		return false
	}
	timestamp := signatureHeader[firstEqual+1 : firstSemicolon]

	if maxAgeSeconds >= 0 {
		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			return false
		}
		if time.Now().Unix()-ts > int64(maxAgeSeconds) {
			return false
		}
	}

	rest := signatureHeader[firstSemicolon+1:]
	secondEqual := strings.IndexByte(rest, '=')
	if secondEqual < 0 {
		return false
	}
	signature := rest[secondEqual+1:]
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte{':'})
	mac.Write(payload)
	calculated := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(calculated))
}

// BuildSignatureHeader constructs a header that VerifySignature accepts for
// the given secret, payload, and timestamp. Used when simulating deliveries
// and in tests.
func BuildSignatureHeader(secret string, payload []byte, ts time.Time) string {
	timestamp := strconv.FormatInt(ts.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte{':'})
	mac.Write(payload)
	return "ts=" + timestamp + ";h1=" + hex.EncodeToString(mac.Sum(nil))
}
