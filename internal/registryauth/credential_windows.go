//go:build windows

package registryauth

import (
	"github.com/danieljoos/wincred"
)

// CredentialBackend stores registry tokens in Windows Credential Manager.
type CredentialBackend struct {
	prefix string
}

// NewCredentialBackend creates the Windows Credential Manager backend.
func NewCredentialBackend() (Backend, error) {
	return &CredentialBackend{prefix: "synlex-registry:"}, nil
}

func (c *CredentialBackend) Set(key, value string) error {
	cred := wincred.NewGenericCredential(c.prefix + key)
	cred.CredentialBlob = []byte(value)
	cred.Persist = wincred.PersistLocalMachine
	return cred.Write()
}

func (c *CredentialBackend) Get(key string) (string, error) {
	cred, err := wincred.GetGenericCredential(c.prefix + key)
	if err != nil {
		if err == wincred.ErrElementNotFound {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return string(cred.CredentialBlob), nil
}

func (c *CredentialBackend) Delete(key string) error {
	cred, err := wincred.GetGenericCredential(c.prefix + key)
	if err != nil {
		if err == wincred.ErrElementNotFound {
			return nil
		}
		return err
	}
	return cred.Delete()
}
