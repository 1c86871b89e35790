// Package security provides helpers for handling secret material: wiping
// buffers, tracking secrets for the lifetime of an operation, constant-time
// comparison and input length checks.
package security

import (
	"crypto/subtle"
	"runtime"
	"sync"
)

// Zeroizer is implemented by values that hold secret material and can wipe it
// in place.
type Zeroizer interface {
	Zeroize()
}

// SecureZero overwrites data with zeros in a way the compiler will not elide.
func SecureZero(data []byte) {
	if len(data) == 0 {
		return
	}

	zeros := make([]byte, len(data))
	subtle.ConstantTimeCopy(1, data, zeros)

	runtime.KeepAlive(data)
}

// ConstantTimeCompare reports whether a and b are equal without leaking
// timing information about where they differ.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Scope collects every secret produced during one operation so that all of
// them are wiped together, whatever path the operation exits by.
//
// Typical use:
//
//	scope := security.NewScope()
//	defer scope.Wipe()
//	k := scope.Track(deriveNonce(...))
type Scope struct {
	mu      sync.Mutex
	buffers [][]byte
	values  []Zeroizer
	wiped   bool
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Bytes registers a buffer to be wiped and returns it unchanged.
func (s *Scope) Bytes(b []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wiped {
		SecureZero(b)
		return b
	}
	s.buffers = append(s.buffers, b)
	return b
}

// Alloc returns a fresh n-byte buffer that is wiped with the scope.
func (s *Scope) Alloc(n int) []byte {
	return s.Bytes(make([]byte, n))
}

// Add registers a secret value to be wiped with the scope.
func (s *Scope) Add(z Zeroizer) {
	if z == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wiped {
		z.Zeroize()
		return
	}
	s.values = append(s.values, z)
}

// Wipe zeroizes everything registered so far. Anything registered after Wipe
// is wiped immediately. Calling Wipe more than once is harmless.
func (s *Scope) Wipe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.buffers {
		SecureZero(b)
	}
	for _, z := range s.values {
		z.Zeroize()
	}
	s.buffers = nil
	s.values = nil
	s.wiped = true
}
