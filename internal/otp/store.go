package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"time"
)

var (
	ErrNotSent = errors.New("no OTP sent")
	ErrExpired = errors.New("OTP expired")
	ErrWrong   = errors.New("invalid OTP")
)

const (
	DefaultTTL   = 5 * time.Minute
	sweepEvery   = time.Minute
	maxEntries   = 10000
	codeAlphabet = 900000
	codeFloor    = 100000
)

type entry struct {
	code    string
	expires time.Time
}

// Store holds one pending code per email address. Entries expire after the
// TTL and are removed either on lookup or by the periodic sweep; the store
// refuses new codes once full rather than growing without bound.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	done    chan struct{}
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go s.sweep()
	return s
}

// Issue generates a fresh 6-digit code for email, replacing any prior one.
func (s *Store) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeAlphabet))
	if err != nil {
		return "", err
	}
	code := big.NewInt(0).Add(n, big.NewInt(codeFloor)).String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[email]; !exists && len(s.entries) >= maxEntries {
		return "", errors.New("otp store full")
	}
	s.entries[email] = entry{code: code, expires: s.now().Add(s.ttl)}
	return code, nil
}

// Verify checks the code without consuming it.
func (s *Store) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.check(email, code)
}

// Consume checks the code and deletes it on success, so a reset code
// cannot be replayed.
func (s *Store) Consume(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(email, code); err != nil {
		return err
	}
	delete(s.entries, email)
	return nil
}

func (s *Store) check(email, code string) error {
	e, ok := s.entries[email]
	if !ok {
		return ErrNotSent
	}
	if s.now().After(e.expires) {
		delete(s.entries, email)
		return ErrExpired
	}
	if e.code != code {
		return ErrWrong
	}
	return nil
}

func (s *Store) sweep() {
	t := time.NewTicker(sweepEvery)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			now := s.now()
			s.mu.Lock()
			for email, e := range s.entries {
				if now.After(e.expires) {
					delete(s.entries, email)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Store) Close() {
	close(s.done)
}
