// Package export serializes a session into a downloadable ".omega" package:
// a stable, indented JSON representation of the full project state.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/omegalabs/studio/internal/models"
)

// Filename returns the suggested artifact name for a session.
func Filename(s *models.Session) string {
	name := strings.Join(strings.Fields(s.Name), "_")
	if name == "" {
		name = "Untitled_Project"
	}
	return name + "_Source.omega"
}

// WriteArchive writes the session package to w.
func WriteArchive(s *models.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return nil
}

// ReadArchive parses a previously exported package.
func ReadArchive(r io.Reader) (*models.Session, error) {
	var s models.Session
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
