// Package verify holds the one-time verification codes that gate intake
// submissions to verifying recipients.
package verify

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

// CodeTTL is how long an issued code stays valid.
const CodeTTL = 10 * time.Minute

// Store issues and consumes one-time verification codes. At most one live
// code exists per (link id, contact) pair; issuing again replaces it.
type Store interface {
	Issue(linkID, contact string) string
	Consume(linkID, contact, submittedCode string) bool
}

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore keeps codes in process memory. A restart drops every
// outstanding code; the pinger simply requests a new one.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// storeKey normalizes both halves of the composite key so that
// "Bob@Example.com" and "bob@example.com " address the same entry.
func storeKey(linkID, contact string) string {
	return strings.ToLower(strings.TrimSpace(linkID)) + ":" + strings.ToLower(strings.TrimSpace(contact))
}

// Issue generates a fresh 6-digit code for the pair, replacing any earlier
// code, and returns it. Codes live for CodeTTL from issuance.
func (s *MemoryStore) Issue(linkID, contact string) string {
	code := generateCode()
	k := storeKey(linkID, contact)
	s.mu.Lock()
	s.entries[k] = entry{code: code, expiresAt: s.now().Add(CodeTTL)}
	s.mu.Unlock()
	return code
}

// Consume validates a submitted code against the outstanding entry for the
// pair. A match deletes the entry (single use); an expired entry is deleted
// and fails; a mismatch fails but leaves the entry so the pinger can retry
// within the expiry window. The check-then-delete runs under one critical
// section, so racing consumes of the same code yield at most one success.
func (s *MemoryStore) Consume(linkID, contact, submittedCode string) bool {
	k := storeKey(linkID, contact)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[k]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, k)
		return false
	}
	if e.code != strings.TrimSpace(submittedCode) {
		return false
	}
	delete(s.entries, k)
	return true
}

// generateCode returns a uniformly random code in [100000, 999999].
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in no state to serve anything.
		panic("verify: crypto/rand unavailable: " + err.Error())
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
