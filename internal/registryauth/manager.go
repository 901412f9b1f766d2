// Package registryauth stores the bearer token `synlex table fetch` sends to
// a remote syntax-table registry, one token per host, in the platform's
// native credential store.
//
// Adapted from drun's internal/secrets: same per-OS backend detection and
// fallback-to-encrypted-file design, narrowed from a general namespace/key
// secret store down to a single host-keyed token store (a registry fetch
// only ever needs one credential per host, so the namespace dimension of
// the original doesn't earn its keep here).
package registryauth

import (
	"fmt"
	"regexp"
	"runtime"
)

// Manager stores and retrieves the auth token for a registry host.
type Manager interface {
	SetToken(host, token string) error
	Token(host string) (string, error)
	DeleteToken(host string) error
}

// Backend is the platform-specific credential store.
type Backend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

type defaultManager struct {
	backend Backend
}

// validHostPattern accepts the hostnames and host:port pairs a table
// registry URL's authority component can carry.
var validHostPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?(:[0-9]+)?$`)

// NewManager creates a token manager using the backend chosen by
// runtime.GOOS: the OS credential store on macOS, Windows and Linux, and the
// encrypted file on every other platform. Whether the OS store is actually
// reachable is not checked; there is no runtime fallback to the file.
func NewManager() (Manager, error) {
	backend, err := detectBackend()
	if err != nil {
		return nil, err
	}
	return &defaultManager{backend: backend}, nil
}

// NewManagerWithFallback forces the encrypted-file backend, bypassing OS
// credential store detection.
func NewManagerWithFallback() Manager {
	return &defaultManager{backend: NewFallbackBackend()}
}

func detectBackend() (Backend, error) {
	switch runtime.GOOS {
	case "darwin":
		return NewKeychainBackend()
	case "windows":
		return NewCredentialBackend()
	case "linux":
		return NewSecretServiceBackend()
	default:
		return NewFallbackBackend(), nil
	}
}

func (m *defaultManager) SetToken(host, token string) error {
	if err := validateHost(host); err != nil {
		return newAuthError("set", host, err)
	}
	if err := m.backend.Set(formatKey(host), token); err != nil {
		return newAuthError("set", host, err)
	}
	return nil
}

func (m *defaultManager) Token(host string) (string, error) {
	if err := validateHost(host); err != nil {
		return "", newAuthError("get", host, err)
	}
	token, err := m.backend.Get(formatKey(host))
	if err != nil {
		return "", newAuthError("get", host, err)
	}
	return token, nil
}

func (m *defaultManager) DeleteToken(host string) error {
	if err := validateHost(host); err != nil {
		return newAuthError("delete", host, err)
	}
	if err := m.backend.Delete(formatKey(host)); err != nil {
		return newAuthError("delete", host, err)
	}
	return nil
}

func formatKey(host string) string {
	return fmt.Sprintf("registry:%s", host)
}

func validateHost(host string) error {
	if host == "" || !validHostPattern.MatchString(host) {
		return ErrInvalidHost
	}
	return nil
}

// ClearString sets *s to the empty string after use. It zeroes only a
// []byte copy of the token; the original string's bytes are not
// overwritten.
func ClearString(s *string) {
	if s == nil {
		return
	}
	b := []byte(*s)
	for i := range b {
		b[i] = 0
	}
	*s = ""
}
