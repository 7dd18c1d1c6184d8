package auth

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"
)

// TokenStore persists the admin token and its expiry between runs, the way
// the browser admin UI keeps them in local storage.
type TokenStore interface {
	Load() (token string, expiry time.Time, ok bool, err error)
	Save(token string, expiry time.Time) error
	Clear() error
}

// MemoryStore keeps the token in memory only; used in tests and for
// short-lived clients.
type MemoryStore struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
	set    bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (string, time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.expiry, m.set, nil
}

func (m *MemoryStore) Save(token string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.expiry, m.set = token, expiry, true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.expiry, m.set = "", time.Time{}, false
	return nil
}

// FileStore persists the token as a small JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileToken struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (string, time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, err
	}

	var stored fileToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", time.Time{}, false, err
	}
	return stored.Token, stored.Expiry, stored.Token != "", nil
}

func (f *FileStore) Save(token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(fileToken{Token: token, Expiry: expiry})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
