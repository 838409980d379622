package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dquisbert/cartera/internal/models"
)

// Keys mirror the browser localStorage layout of the original web client
type fileState struct {
	AccessToken  string          `json:"token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

// FileStore persists session state in a single JSON file so it survives
// process restarts. Every read goes back to disk, so concurrent processes
// sharing the file see last-write-wins, exactly like two browser tabs
// sharing localStorage. There is no locking.
type FileStore struct {
	path string
}

// NewFileStore opens a store backed by the file at path, creating parent
// directories as needed. A missing file is an empty store, not an error.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("error while creating store directory. Err: %w", err)
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns the session file location under the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error while resolving user config dir. Err: %w", err)
	}
	return filepath.Join(dir, "cartera", "session.json"), nil
}

func (s *FileStore) AccessToken() (string, bool) {
	st := s.load()
	return st.AccessToken, st.AccessToken != ""
}

func (s *FileStore) RefreshToken() (string, bool) {
	st := s.load()
	return st.RefreshToken, st.RefreshToken != ""
}

func (s *FileStore) User() (models.User, bool) {
	st := s.load()
	if len(st.User) == 0 {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(st.User, &user); err != nil {
		// Garbage on disk is the same as no cached profile
		return models.User{}, false
	}
	return user, true
}

func (s *FileStore) SetAccessToken(token string) error {
	st := s.load()
	st.AccessToken = token
	return s.save(st)
}

func (s *FileStore) SetRefreshToken(token string) error {
	st := s.load()
	st.RefreshToken = token
	return s.save(st)
}

func (s *FileStore) SetUser(user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error while serializing user. Err: %w", err)
	}

	st := s.load()
	st.User = raw
	return s.save(st)
}

// ClearAll removes the whole file. Removal is atomic, a reader sees either
// the previous full state or nothing.
func (s *FileStore) ClearAll() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error while clearing session file. Err: %w", err)
	}
	return nil
}

// load reads the current file state. Missing or unreadable file means
// empty state, the store has no error conditions beyond "key absent".
func (s *FileStore) load() fileState {
	var st fileState

	data, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}

	_ = json.Unmarshal(data, &st)
	return st
}

// save writes the state through a temp file and rename so readers never
// observe a partial write
func (s *FileStore) save(st fileState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("error while serializing session state. Err: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("error while creating temp session file. Err: %w", err)
	}

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error while writing session file. Err: %w", errors.Join(werr, cerr))
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error while replacing session file. Err: %w", err)
	}
	return nil
}
