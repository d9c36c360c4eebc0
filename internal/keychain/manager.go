// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for mural.
// This module manages all interactions with the OS keychain/credential store and
// holds the only persisted secret of the client: the raw session token, stored
// under a single fixed key.
//
// The package prefers the native macOS security command, then falls back to the
// platform keyring (Keychain, Windows Credential Manager, Secret Service, KWallet,
// pass) and finally to an encrypted file under the XDG data directory.
package keychain

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"

	"mural/cli/internal/xdg"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ErrNotFound is returned when no token has been stored yet.
var ErrNotFound = errors.New("keychain: token not found")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "mural"

// KeyAuthToken is the single key the session token is stored under.
const KeyAuthToken = "authToken"

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}

	return NewManagerWithRing(ring), nil
}

// NewManagerWithRing wraps an already opened keyring. Tests use it with
// keyring.NewArrayKeyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}

	return globalManager, nil
}

// openRing opens the OS keyring, preferring native platform backends.
// The file backend is the last resort and is encrypted with MURAL_KEYRING_PASSWORD
// or a terminal prompt.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// pass requires 'pass' utility installed: brew install pass
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
	}

	if dir, err := xdg.DataDir(); err == nil {
		cfg.FileDir = dir
	}
	if pw := os.Getenv("MURAL_KEYRING_PASSWORD"); pw != "" {
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(pw)
	} else {
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}

	return ring, nil
}

// SaveToken stores the session token in the OS keychain.
// This method is thread-safe.
func (m *Manager) SaveToken(token string) error {
	if token == "" {
		return errors.New("keychain: refusing to store an empty token")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(KeyAuthToken, token)
	}
	return m.ring.Set(keyring.Item{Key: KeyAuthToken, Data: []byte(token)})
}

// LoadToken retrieves the session token from the keychain.
// A missing or empty entry yields ErrNotFound.
// This method is thread-safe.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var token string
	if m.backend != nil {
		v, err := m.backend.Get(KeyAuthToken)
		if err != nil {
			if errors.Is(err, errBackendNotFound) {
				return "", ErrNotFound
			}
			return "", err
		}
		token = v
	} else {
		it, err := m.ring.Get(KeyAuthToken)
		if err != nil {
			if errors.Is(err, keyring.ErrKeyNotFound) {
				return "", ErrNotFound
			}
			return "", err
		}
		token = string(it.Data)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

// ClearToken removes the session token from the keychain. Clearing a key that
// does not exist is not an error.
// This method is thread-safe.
func (m *Manager) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		if err := m.backend.Delete(KeyAuthToken); err != nil && !errors.Is(err, errBackendNotFound) {
			return err
		}
		return nil
	}

	if err := m.ring.Remove(KeyAuthToken); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !os.IsNotExist(err) {
		return err
	}
	return nil
}
