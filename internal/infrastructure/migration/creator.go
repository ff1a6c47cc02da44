package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MigrationFile describes a freshly created up/down migration pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down migration pair into dir.
// The version prefix is the creation timestamp, so lexical order is
// application order.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
	}

	base := mf.Version + "_" + slugify(name)
	mf.UpPath = filepath.Join(dir, base+".up.sql")
	mf.DownPath = filepath.Join(dir, base+".down.sql")

	up := header(name, description, now) + "-- Write your UP migration SQL here\n\n"
	if err := os.WriteFile(mf.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}

	down := header(name+" (Rollback)", "Rollback for "+description, now) +
		"-- Write your DOWN migration SQL here\n\n"
	if err := os.WriteFile(mf.DownPath, []byte(down), 0644); err != nil {
		// Do not leave a half-created pair behind
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return mf, nil
}

func header(name, description string, now time.Time) string {
	return fmt.Sprintf("-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n",
		name, now.Format(time.RFC3339), description)
}

// slugify lowercases a migration name and collapses separators so it
// is safe as a file name segment
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if len(s) > 0 && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of every up/down pair in dir,
// sorted in application order. A missing directory lists as empty.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".up.sql"))
	}
	sort.Strings(names)
	return names, nil
}
