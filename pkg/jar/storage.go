package jar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	DefaultStorageFileName = ".swapjar-jars.json"
)

// Storage handles persistence of tip jars. Backed by a JSON file so a
// deployment works without a database; this is deliberately a mock-grade
// registry, not durable storage.
type Storage struct {
	filePath string
	mu       sync.RWMutex
	jars     map[string]*Jar // keyed by jar ID
}

// jarFile represents the JSON structure on disk
type jarFile struct {
	Jars map[string]*Jar `json:"jars"`
}

// NewStorage creates a new storage instance
func NewStorage(filePath string) (*Storage, error) {
	if filePath == "" {
		// Default to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStorageFileName)
	}

	storage := &Storage{
		filePath: filePath,
		jars:     make(map[string]*Jar),
	}

	// Load existing jars if file exists
	if err := storage.load(); err != nil {
		// Missing file is fine, it is created on first save
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load jars: %w", err)
		}
	}

	return storage, nil
}

// load reads jars from the storage file
func (s *Storage) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var file jarFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal jars: %w", err)
	}

	s.jars = file.Jars
	if s.jars == nil {
		s.jars = make(map[string]*Jar)
	}

	return nil
}

// save writes jars to the storage file. Callers must not hold the lock.
func (s *Storage) save() error {
	s.mu.RLock()
	file := jarFile{Jars: s.jars}
	data, err := json.MarshalIndent(file, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal jars: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to temporary file first, then rename for atomic write
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write jars: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Create adds a new jar to storage. The slug must be unused.
func (s *Storage) Create(j *Jar) error {
	if err := j.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	for _, existing := range s.jars {
		if existing.Slug == j.Slug {
			s.mu.Unlock()
			return fmt.Errorf("jar slug '%s' already exists", j.Slug)
		}
	}
	s.jars[j.ID] = j
	s.mu.Unlock()

	return s.save()
}

// Get retrieves a jar by ID
func (s *Storage) Get(id string) (*Jar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, exists := s.jars[id]
	if !exists {
		return nil, fmt.Errorf("jar '%s' not found", id)
	}

	return j, nil
}

// GetBySlug retrieves a jar by its public slug
func (s *Storage) GetBySlug(slug string) (*Jar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, j := range s.jars {
		if j.Slug == slug {
			return j, nil
		}
	}

	return nil, fmt.Errorf("jar '%s' not found", slug)
}

// List returns all jars
func (s *Storage) List() []*Jar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jars := make([]*Jar, 0, len(s.jars))
	for _, j := range s.jars {
		jars = append(jars, j)
	}

	return jars
}

// Count returns the total number of jars
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.jars)
}
