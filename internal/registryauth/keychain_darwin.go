//go:build darwin

package registryauth

import (
	"github.com/keybase/go-keychain"
)

// KeychainBackend stores registry tokens in the macOS Keychain.
type KeychainBackend struct {
	service string
}

// NewKeychainBackend creates the macOS Keychain backend.
func NewKeychainBackend() (Backend, error) {
	return &KeychainBackend{service: "com.phillarmonic.synlex.registry"}, nil
}

func (k *KeychainBackend) Set(key, value string) error {
	k.Delete(key)

	item := keychain.NewItem()
	item.SetService(k.service)
	item.SetAccount(key)
	item.SetData([]byte(value))
	item.SetSynchronizable(keychain.SynchronizableNo)
	item.SetAccessible(keychain.AccessibleWhenUnlocked)

	return keychain.AddItem(item)
}

func (k *KeychainBackend) Get(key string) (string, error) {
	query := keychain.NewItem()
	query.SetService(k.service)
	query.SetAccount(key)
	query.SetMatchLimit(keychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := keychain.QueryItem(query)
	if err != nil {
		if err == keychain.ErrorItemNotFound {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	if len(results) == 0 {
		return "", ErrTokenNotFound
	}
	return string(results[0].Data), nil
}

func (k *KeychainBackend) Delete(key string) error {
	item := keychain.NewItem()
	item.SetService(k.service)
	item.SetAccount(key)

	err := keychain.DeleteItem(item)
	if err != nil && err != keychain.ErrorItemNotFound {
		return err
	}
	return nil
}
