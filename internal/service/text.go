package service

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	maxEvidenceRunes = 1000
	maxMemoRunes     = 100
)

// normalizeText trims s and converts it to NFC so equal strings compare equal
// regardless of how the client composed them.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeEvidence returns the stored form of a force-complete evidence
// string and whether it is acceptable.
func normalizeEvidence(s string) (string, bool) {
	ev := normalizeText(s)
	if ev == "" || utf8.RuneCountInString(ev) > maxEvidenceRunes {
		return "", false
	}
	return ev, true
}

// normalizeReason returns the NFC form of an optional decider note and
// whether it fits. An empty reason is accepted.
func normalizeReason(s string) (string, bool) {
	reason := normalizeText(s)
	return reason, utf8.RuneCountInString(reason) <= maxEvidenceRunes
}

// normalizeMemo returns the NFC form of a transfer memo and whether it fits.
func normalizeMemo(s string) (string, bool) {
	memo := normalizeText(s)
	return memo, utf8.RuneCountInString(memo) <= maxMemoRunes
}
