//go:build linux

package registryauth

import (
	"github.com/zalando/go-keyring"
)

// SecretServiceBackend stores registry tokens in the Linux Secret Service
// (GNOME Keyring, KWallet).
type SecretServiceBackend struct {
	service string
}

// NewSecretServiceBackend creates the Linux Secret Service backend.
func NewSecretServiceBackend() (Backend, error) {
	return &SecretServiceBackend{service: "synlex-registry"}, nil
}

func (s *SecretServiceBackend) Set(key, value string) error {
	return keyring.Set(s.service, key, value)
}

func (s *SecretServiceBackend) Get(key string) (string, error) {
	value, err := keyring.Get(s.service, key)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *SecretServiceBackend) Delete(key string) error {
	err := keyring.Delete(s.service, key)
	if err != nil && err != keyring.ErrNotFound {
		return err
	}
	return nil
}
