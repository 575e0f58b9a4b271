package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/frostframe/internal/snow"
)

var (
	ErrInvalidName = errors.New("storage: invalid profile name")
	ErrNotFound    = errors.New("storage: profile not found")
)

const profileDir = "profiles"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.dir(), 0755)
}

type Profile struct {
	Name    string      `yaml:"name"`
	SavedAt time.Time   `yaml:"saved_at"`
	Snow    snow.Config `yaml:"snow"`
}

func (s *Store) dir() string {
	return filepath.Join(s.baseDir, profileDir)
}

func (s *Store) path(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir(), name+".yaml"), nil
}

// Save writes cfg under name, replacing any profile of the same name.
func (s *Store) Save(name string, cfg snow.Config) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}

	p := Profile{
		Name:    strings.ToLower(strings.TrimSpace(name)),
		SavedAt: time.Now().UTC(),
		Snow:    cfg.Sanitize(),
	}
	data, err := yaml.Marshal(&p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load returns the saved configuration for name. It satisfies
// config.ProfileLoader.
func (s *Store) Load(name string) (snow.Config, error) {
	p, err := s.LoadProfile(name)
	if err != nil {
		return snow.Config{}, err
	}
	return p.Snow, nil
}

func (s *Store) LoadProfile(name string) (*Profile, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, nil
}

// List returns every readable profile sorted by name. Unparseable files are
// skipped.
func (s *Store) List() ([]Profile, error) {
	entries, err := os.ReadDir(s.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return []Profile{}, nil
		}
		return nil, err
	}

	profiles := make([]Profile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		p, err := s.LoadProfile(strings.TrimSuffix(entry.Name(), ".yaml"))
		if err != nil {
			continue
		}
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return err
	}
	return nil
}
