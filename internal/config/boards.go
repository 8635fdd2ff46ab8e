package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// BoardsRegistry holds the list of known board files
type BoardsRegistry struct {
	Boards       []BoardEntry `json:"boards"`
	DefaultBoard string       `json:"defaultBoard"`
}

// BoardEntry is a named board file
type BoardEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var (
	// ErrBoardNotFound is returned when a board doesn't exist in the registry
	ErrBoardNotFound = errors.New("board not found")
	// ErrDuplicateBoard is returned when trying to add a board that already exists
	ErrDuplicateBoard = errors.New("board already exists")
	// ErrEmptyName is returned when the board name is empty
	ErrEmptyName = errors.New("board name cannot be empty")
	// ErrEmptyPath is returned when the board path is empty
	ErrEmptyPath = errors.New("board path cannot be empty")
	// ErrNotBoardFile is returned when the path is not a YAML file
	ErrNotBoardFile = errors.New("path is not a board file")
)

// LoadBoardsRegistry loads the registry from disk.
// Returns an empty registry if the file doesn't exist
func LoadBoardsRegistry() (*BoardsRegistry, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &BoardsRegistry{Boards: []BoardEntry{}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var registry BoardsRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, err
	}

	return &registry, nil
}

// SaveBoardsRegistry saves the registry to disk
func SaveBoardsRegistry(reg *BoardsRegistry) error {
	path, err := registryPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Add registers a board file under name. The first board becomes the default.
func (r *BoardsRegistry) Add(name, path string) error {
	if name == "" {
		return ErrEmptyName
	}
	if path == "" {
		return ErrEmptyPath
	}

	for _, b := range r.Boards {
		if b.Name == name {
			return ErrDuplicateBoard
		}
	}

	if !isBoardFile(path) {
		return ErrNotBoardFile
	}

	r.Boards = append(r.Boards, BoardEntry{Name: name, Path: path})
	if len(r.Boards) == 1 {
		r.DefaultBoard = name
	}

	return nil
}

// Remove removes a board from the registry
func (r *BoardsRegistry) Remove(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	found := false
	for i, b := range r.Boards {
		if b.Name == name {
			r.Boards = append(r.Boards[:i], r.Boards[i+1:]...)
			found = true
			break
		}
	}

	if !found {
		return ErrBoardNotFound
	}

	// Fall back to the first remaining board
	if r.DefaultBoard == name {
		r.DefaultBoard = ""
		if len(r.Boards) > 0 {
			r.DefaultBoard = r.Boards[0].Name
		}
	}

	return nil
}

// SetDefault sets the default board
func (r *BoardsRegistry) SetDefault(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := r.Get(name); err != nil {
		return err
	}
	r.DefaultBoard = name
	return nil
}

// Get retrieves a board by name
func (r *BoardsRegistry) Get(name string) (*BoardEntry, error) {
	for _, b := range r.Boards {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, ErrBoardNotFound
}

// GetDefault returns the default board, or nil if none is set
func (r *BoardsRegistry) GetDefault() *BoardEntry {
	if r.DefaultBoard == "" {
		return nil
	}
	b, err := r.Get(r.DefaultBoard)
	if err != nil {
		return nil
	}
	return b
}

// Resolve maps a --board argument to a file path. Registered names win;
// anything else is taken as a path.
func (r *BoardsRegistry) Resolve(arg string) string {
	if b, err := r.Get(arg); err == nil {
		return b.Path
	}
	return arg
}

// registryPath returns the path to the registry file. Overridden in tests.
var registryPath = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wipboard", "boards.json"), nil
}

// isBoardFile accepts .yaml and .yml paths. The file need not exist yet.
func isBoardFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return os.IsNotExist(err)
	}
	return !info.IsDir()
}
