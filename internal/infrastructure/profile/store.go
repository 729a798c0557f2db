// Package profile keeps CLI credentials in a YAML file, one entry per named
// profile.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.CredentialStore = (*Store)(nil)

const fileMode = 0o600

type entry struct {
	Token string       `yaml:"token"`
	User  *domain.User `yaml:"user,omitempty"`
}

type document struct {
	Profiles map[string]entry `yaml:"profiles"`
}

// Store is a CredentialStore over a single YAML file. Every call re-reads
// the file so several CLI processes see each other's logins.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user profile file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("profile: config dir: %w", err)
	}
	return filepath.Join(dir, "condo-gateway", "credentials.yaml"), nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context, key string) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	e, ok := doc.Profiles[key]
	if !ok || e.Token == "" {
		return nil, domain.ErrNotFound
	}
	return &domain.Credential{Token: e.Token, User: e.User}, nil
}

func (s *Store) Save(_ context.Context, key string, cred *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Profiles[key] = entry{Token: cred.Token, User: cred.User}
	return s.write(doc)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Profiles[key]; !ok {
		return nil
	}
	delete(doc.Profiles, key)
	return s.write(doc)
}

func (s *Store) read() (*document, error) {
	doc := &document{}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc.Profiles = map[string]entry{}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", s.path, err)
	}
	if doc.Profiles == nil {
		doc.Profiles = map[string]entry{}
	}
	return doc, nil
}

// write replaces the file atomically.
func (s *Store) write(doc *document) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("profile: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("profile: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("profile: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("profile: write: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("profile: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("profile: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("profile: replace: %w", err)
	}
	return nil
}
