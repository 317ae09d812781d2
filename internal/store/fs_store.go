package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FSStore implements Store on the filesystem. Profiles live under
// <baseDir>/profiles/<name>/.
//
// Thread-safety: writes use atomic rename, so no locking is needed;
// concurrent goroutines may safely call any method.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a filesystem store rooted at baseDir, creating the
// directory if needed.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

func (fs *FSStore) profileDir(name string) string {
	return filepath.Join(fs.baseDir, "profiles", name)
}

func (fs *FSStore) profilePath(name string) string {
	return filepath.Join(fs.profileDir(name), "profile.json")
}

// SaveProfile atomically saves a profile using temp file + rename.
func (fs *FSStore) SaveProfile(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	dir := fs.profileDir(p.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	tempPath := fs.profilePath(p.Name) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp profile file: %w", err)
	}

	finalPath := fs.profilePath(p.Name)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename profile file: %w", err)
	}

	slog.Debug("Profile saved", "name", p.Name, "path", finalPath)
	return nil
}

// LoadProfile retrieves a profile by name.
func (fs *FSStore) LoadProfile(name string) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name cannot be empty")
	}

	path := fs.profilePath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{Name: name}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat profile file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to deserialize profile: %w", err)
	}

	slog.Debug("Profile loaded", "name", name, "path", path)
	return &p, nil
}

// ListProfiles returns metadata for all stored profiles.
func (fs *FSStore) ListProfiles() ([]ProfileInfo, error) {
	profilesDir := filepath.Join(fs.baseDir, "profiles")

	if _, err := os.Stat(profilesDir); os.IsNotExist(err) {
		return []ProfileInfo{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat profiles directory: %w", err)
	}

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}

	var infos []ProfileInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		p, err := fs.LoadProfile(name)
		if err != nil {
			slog.Warn("Failed to load profile for listing", "name", name, "error", err)
			continue
		}
		infos = append(infos, p.ToInfo())
	}

	slog.Debug("Listed profiles", "count", len(infos))
	return infos, nil
}

// DeleteProfile removes a profile directory including its tuning trace.
func (fs *FSStore) DeleteProfile(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	dir := fs.profileDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{Name: name}
	} else if err != nil {
		return fmt.Errorf("failed to stat profile directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove profile directory: %w", err)
	}

	slog.Debug("Profile deleted", "name", name, "path", dir)
	return nil
}
