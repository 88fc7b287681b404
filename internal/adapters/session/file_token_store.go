package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

// FileTokenStore хранит токен терминального клиента в JSON-файле под ключом "token".
type FileTokenStore struct {
	path string
}

var _ port.TokenStorePort = (*FileTokenStore)(nil)

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

type tokenFile struct {
	Token string `json:"token"`
}

func (s *FileTokenStore) LoadToken(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		// испорченный файл равносилен отсутствию сессии
		return "", nil
	}
	return tf.Token, nil
}

func (s *FileTokenStore) SaveToken(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.Marshal(tokenFile{Token: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileTokenStore) ClearToken(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file %s: %w", s.path, err)
	}
	return nil
}
