package logging

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"
	"time"
)

const sessionTimeLayout = "20060102_150405"

// SessionID tags every log line of one feedwall run, e.g.
// "20251217_205106_a7b3". Log lines carry only the random suffix.
type SessionID string

// NewSessionID stamps now and two bytes read from entropy. A failing reader
// leaves the suffix as zeros.
func NewSessionID(now time.Time, entropy io.Reader) SessionID {
	var suffix [2]byte
	_, _ = io.ReadFull(entropy, suffix[:])
	return SessionID(now.Format(sessionTimeLayout) + "_" + hex.EncodeToString(suffix[:]))
}

// GenerateSessionID returns a fresh session id for the current run.
func GenerateSessionID() string {
	return string(NewSessionID(time.Now(), rand.Reader))
}

// Short returns the random suffix, or the whole id when it has no suffix.
func (id SessionID) Short() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ShortSessionID is Short for plain strings.
func ShortSessionID(sessionID string) string {
	return SessionID(sessionID).Short()
}
