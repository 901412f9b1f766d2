package registryauth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	saltSize         = 32
	keySize          = 32
)

// FallbackBackend stores registry tokens in an AES-256-GCM-encrypted file
// under ~/.synlex/registry-auth.enc, for platforms with no reachable OS
// credential store.
type FallbackBackend struct {
	path   string
	key    []byte
	tokens map[string]string
	mu     sync.RWMutex
}

type encryptedEnvelope struct {
	Salt   []byte `json:"salt"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// NewFallbackBackend creates the encrypted-file backend at its default
// location.
func NewFallbackBackend() Backend {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	dir := filepath.Join(homeDir, ".synlex")
	os.MkdirAll(dir, 0700)
	return NewFallbackBackendWithPath(filepath.Join(dir, "registry-auth.enc"))
}

// NewFallbackBackendWithPath creates the encrypted-file backend at a custom
// path, for tests.
func NewFallbackBackendWithPath(path string) Backend {
	os.MkdirAll(filepath.Dir(path), 0700)
	b := &FallbackBackend{
		path:   path,
		key:    deriveKey(),
		tokens: make(map[string]string),
	}
	b.load()
	return b
}

func (f *FallbackBackend) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[key] = value
	return f.save()
}

func (f *FallbackBackend) Get(key string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.tokens[key]
	if !ok {
		return "", ErrTokenNotFound
	}
	return value, nil
}

func (f *FallbackBackend) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, key)
	return f.save()
}

func (f *FallbackBackend) save() error {
	data, err := json.Marshal(f.tokens)
	if err != nil {
		return err
	}
	encrypted, err := f.encrypt(data)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, encrypted, 0600)
}

func (f *FallbackBackend) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	decrypted, err := f.decrypt(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(decrypted, &f.tokens)
}

func (f *FallbackBackend) encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := pbkdf2.Key(f.key, salt, pbkdf2Iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	return json.Marshal(encryptedEnvelope{Salt: salt, Nonce: nonce, Cipher: ciphertext})
}

func (f *FallbackBackend) decrypt(data []byte) ([]byte, error) {
	var env encryptedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	key := pbkdf2.Key(f.key, env.Salt, pbkdf2Iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != gcm.NonceSize() {
		return nil, errors.New("invalid nonce size")
	}
	return gcm.Open(nil, env.Nonce, env.Cipher, nil)
}

// deriveKey seeds the at-rest key from machine-identifying data. This
// protects the file against casual copying, not a targeted attacker with
// local access — the same tradeoff an unattended CLI's credential fallback
// always makes without a human around to type a passphrase.
func deriveKey() []byte {
	homeDir, _ := os.UserHomeDir()
	hostname, _ := os.Hostname()
	seed := homeDir + ":" + hostname + ":synlex-registry-auth"
	return pbkdf2.Key([]byte(seed), []byte("synlex-registry-salt"), pbkdf2Iterations, keySize, sha256.New)
}
