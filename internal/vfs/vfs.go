// Package vfs implements the in-memory virtual file store. Every mutation
// returns a new slice (copy-on-write), so the store holds no hidden state and
// concurrent-write corruption is structurally impossible as long as the
// single-run invariant holds upstream.
package vfs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/omegalabs/studio/internal/models"
)

var (
	// ErrParentNotFound is returned when a parent id resolves to nothing.
	ErrParentNotFound = errors.New("parent not found")
	// ErrNotFolder is returned when the parent exists but is a plain file.
	ErrNotFolder = errors.New("parent is not a folder")
	// ErrCycle is returned by ValidateTree when a node is its own ancestor.
	ErrCycle = errors.New("cycle in file tree")
)

// Find returns the node with the given id, or nil.
func Find(files []models.VirtualFile, id string) *models.VirtualFile {
	for i := range files {
		if files[i].ID == id {
			return &files[i]
		}
	}
	return nil
}

// CreateFile appends a new file under parentID. The parent must be the root
// sentinel or an existing folder. Names need not be unique.
func CreateFile(files []models.VirtualFile, parentID, name, content string) ([]models.VirtualFile, error) {
	if err := checkParent(files, parentID); err != nil {
		return files, err
	}
	nf := models.VirtualFile{
		ID:       models.NewID(),
		Name:     name,
		Kind:     models.KindFile,
		ParentID: parentID,
		Content:  content,
		Language: LanguageForName(name),
	}
	return append(copyOf(files), nf), nil
}

// CreateFolder appends a new folder under parentID.
func CreateFolder(files []models.VirtualFile, parentID, name string) ([]models.VirtualFile, error) {
	if err := checkParent(files, parentID); err != nil {
		return files, err
	}
	nf := models.VirtualFile{
		ID:       models.NewID(),
		Name:     name,
		Kind:     models.KindFolder,
		ParentID: parentID,
	}
	return append(copyOf(files), nf), nil
}

// UpdateContent replaces the content of the file with the given id. Missing
// ids are a no-op, and applying the same content twice is idempotent.
func UpdateContent(files []models.VirtualFile, fileID, content string) []models.VirtualFile {
	out := copyOf(files)
	for i := range out {
		if out[i].ID == fileID && out[i].Kind == models.KindFile {
			out[i].Content = content
		}
	}
	return out
}

// Children returns the direct children of parentID in insertion order.
func Children(files []models.VirtualFile, parentID string) []models.VirtualFile {
	var out []models.VirtualFile
	for _, f := range files {
		if f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out
}

// ValidateTree checks that every non-root node's parent resolves to an
// existing folder or the root sentinel, and that no node is its own ancestor.
// The store never creates cycles itself, but nothing structural prevents a
// caller from loading a corrupt session, so persistence runs this on load.
func ValidateTree(files []models.VirtualFile) error {
	byID := make(map[string]models.VirtualFile, len(files))
	for _, f := range files {
		byID[f.ID] = f
	}
	for _, f := range files {
		if f.ParentID == models.RootID {
			continue
		}
		parent, ok := byID[f.ParentID]
		if !ok {
			return fmt.Errorf("node %s (%s): %w", f.ID, f.Name, ErrParentNotFound)
		}
		if parent.Kind != models.KindFolder {
			return fmt.Errorf("node %s (%s): %w", f.ID, f.Name, ErrNotFolder)
		}

		// Walk up; more hops than nodes means we looped.
		cur := f
		for hops := 0; cur.ParentID != models.RootID; hops++ {
			if hops > len(files) {
				return fmt.Errorf("node %s (%s): %w", f.ID, f.Name, ErrCycle)
			}
			next, ok := byID[cur.ParentID]
			if !ok {
				break
			}
			if next.ID == f.ID {
				return fmt.Errorf("node %s (%s): %w", f.ID, f.Name, ErrCycle)
			}
			cur = next
		}
	}
	return nil
}

// LanguageForName derives an informational language tag from a file name.
func LanguageForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".kt", ".kts":
		return "kotlin"
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx":
		return "javascript"
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	case ".html":
		return "html"
	case ".css":
		return "css"
	case ".yml", ".yaml":
		return "yaml"
	default:
		return "plaintext"
	}
}

func checkParent(files []models.VirtualFile, parentID string) error {
	if parentID == models.RootID {
		return nil
	}
	parent := Find(files, parentID)
	if parent == nil {
		return fmt.Errorf("parent %s: %w", parentID, ErrParentNotFound)
	}
	if parent.Kind != models.KindFolder {
		return fmt.Errorf("parent %s (%s): %w", parentID, parent.Name, ErrNotFolder)
	}
	return nil
}

func copyOf(files []models.VirtualFile) []models.VirtualFile {
	out := make([]models.VirtualFile, len(files))
	copy(out, files)
	return out
}
