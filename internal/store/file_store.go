package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"lingo/internal/domain"
)

const (
	plainFile  = "session.json"
	sealedFile = "session.enc"
)

// FileStore keeps the session keys in a single JSON document under home.
// With a passphrase the document is sealed with scrypt + ChaCha20-Poly1305
// and written to session.enc instead of session.json.
type FileStore struct {
	path       string
	passphrase string
	kdf        kdf
	mu         sync.Mutex
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithPassphrase seals the session file with a key derived from passphrase.
func WithPassphrase(passphrase string) FileOption {
	return func(s *FileStore) { s.passphrase = passphrase }
}

// WithScryptCost overrides the scrypt parameters used when sealing.
func WithScryptCost(n, r, p int) FileOption {
	return func(s *FileStore) { s.kdf = kdf{N: n, R: r, P: p} }
}

// NewFileStore returns a store rooted at home. The directory is created on
// first write.
func NewFileStore(home string, opts ...FileOption) *FileStore {
	s := &FileStore{kdf: defaultKDF}
	for _, opt := range opts {
		opt(s)
	}
	name := plainFile
	if s.passphrase != "" {
		name = sealedFile
	}
	s.path = filepath.Join(home, name)
	return s
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

func (s *FileStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	n := len(m)
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == n {
		return nil
	}
	return s.save(m)
}

func (s *FileStore) load() (map[string]string, error) {
	b, err := readFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if b != nil && s.passphrase != "" {
		if b, err = open(s.passphrase, b); err != nil {
			return nil, err
		}
	}
	m, err := decodeEntries(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return m, nil
}

// save persists m; an empty map removes the file.
func (s *FileStore) save(m map[string]string) error {
	if len(m) == 0 {
		return removeFile(s.path)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if s.passphrase != "" {
		if b, err = seal(s.passphrase, b, s.kdf); err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
	}
	return writeFile(s.path, b, 0o600)
}

var _ domain.Storage = (*FileStore)(nil)
