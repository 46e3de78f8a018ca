// Package saves stores the battery RAM of cartridges on disk.
//
// Every cartridge gets its own folder in the save folder, named by its
// title, holding one file per save:
//
//	<folder>/<title>/<timestamp>.sav
//
// where timestamp is the number of seconds since the Unix epoch. The
// newest save is loaded.
package saves

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const extension = ".sav"

// Store is a save folder.
type Store struct {
	folder string
	now    func() time.Time
}

// NewStore returns a Store for the given folder, which is created on
// the first write.
func NewStore(folder string) *Store {
	return &Store{folder: folder, now: time.Now}
}

// Latest returns the contents of the newest save of the cartridge,
// or nil when there is none.
func (s *Store) Latest(title string) ([]byte, error) {
	files, err := os.ReadDir(s.cartFolder(title))
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("saves: %w", err)
	}

	var newest string
	var newestTime int64 = -1
	for _, file := range files {
		if file.IsDir() || !isSaveFile(file.Name()) {
			continue
		}
		if ts := parseTimestampFromFilename(file.Name()); ts > newestTime {
			newest, newestTime = file.Name(), ts
		}
	}
	if newest == "" {
		return nil, nil
	}

	b, err := os.ReadFile(filepath.Join(s.cartFolder(title), newest))
	if err != nil {
		return nil, fmt.Errorf("saves: %w", err)
	}
	return b, nil
}

// Write stores ram as a new save of the cartridge, returning its path.
// The data is written to a temporary file first, and renamed once
// complete, so a crash never leaves a partial save behind.
func (s *Store) Write(title string, ram []byte) (string, error) {
	folder := s.cartFolder(title)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("saves: %w", err)
	}
	path := filepath.Join(folder, fmt.Sprintf("%d%s", s.now().Unix(), extension))

	f, err := os.CreateTemp(folder, filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("saves: %w", err)
	}
	if _, err := f.Write(ram); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("saves: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("saves: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return "", fmt.Errorf("saves: %w", err)
	}
	return path, nil
}

// cartFolder returns the folder of the cartridge. Characters other
// than letters, digits, spaces, dashes and underscores are replaced, so
// the folder always sits directly inside the save folder.
func (s *Store) cartFolder(title string) string {
	title = strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return r
		}
		return '_'
	}, title))
	if title == "" {
		title = "untitled"
	}
	return filepath.Join(s.folder, title)
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<...>.<timestamp>.sav"
// or "<timestamp>.sav".
func parseTimestampFromFilename(filename string) int64 {
	// strip the file extension
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))

	// get the timestamp from the filename (the last part preceded by a dot)
	parts := strings.Split(filename, ".")
	n, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// isSaveFile returns true if the given filename is a save file.
func isSaveFile(filename string) bool {
	return strings.HasSuffix(filename, extension)
}
