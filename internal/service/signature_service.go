package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// canonicalSeparator joins the fields a watcher signs. None of method,
// path, timestamp or nonce may contain it; the body is last so it can.
const canonicalSeparator = "|"

// HMACSignatureService authenticates the two machine-to-machine channels:
// inbound watcher callbacks and outbound saga notifications.
type HMACSignatureService struct{}

func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign returns lowercase hex HMAC-SHA256(secretKey, payload).
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	return hmac.Equal([]byte(s.Sign(secretKey, payload)), []byte(signature))
}

// BuildCanonicalString is what a watcher signs: METHOD|PATH|TIMESTAMP|NONCE|BODY.
func (s *HMACSignatureService) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	return strings.Join([]string{method, path, strconv.FormatInt(timestamp, 10), nonce, body}, canonicalSeparator)
}

// SignWebhook builds the notification signature header,
// "t=<unix>,v1=<hex hmac of '<unix>.<body>'>".
func (s *HMACSignatureService) SignWebhook(secretKey string, timestamp int64, body []byte) string {
	ts := strconv.FormatInt(timestamp, 10)
	return "t=" + ts + ",v1=" + s.Sign(secretKey, ts+"."+string(body))
}

// VerifyWebhook is the receiving side of SignWebhook, for enterprise
// backends written in Go and for tests. tolerance bounds the age of t.
func (s *HMACSignatureService) VerifyWebhook(secretKey, header string, body []byte, now time.Time, tolerance time.Duration) error {
	var ts, sig string
	for _, part := range strings.Split(header, ",") {
		k, v, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch k {
		case "t":
			ts = v
		case "v1":
			sig = v
		}
	}
	if ts == "" || sig == "" {
		return errors.New("signature header needs t and v1")
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return errors.New("signature timestamp is not a unix time")
	}
	if age := now.Sub(time.Unix(unix, 0)); age > tolerance || age < -tolerance {
		return errors.New("signature timestamp outside tolerance")
	}
	if !s.Verify(secretKey, ts+"."+string(body), sig) {
		return errors.New("signature mismatch")
	}
	return nil
}
