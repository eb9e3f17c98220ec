package models

// FileKind distinguishes files from folders in the virtual tree.
type FileKind string

const (
	KindFile   FileKind = "file"
	KindFolder FileKind = "folder"
)

// RootID is the sentinel parent id for top-level nodes.
const RootID = ""

// VirtualFile is one node in the in-memory project tree. Files carry content;
// folders carry only structure. Nodes are never physically deleted — closing a
// tab removes it from the open list, not from the store.
type VirtualFile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     FileKind `json:"kind"`
	ParentID string   `json:"parentId"`
	Content  string   `json:"content,omitempty"`
	Language string   `json:"language,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (f VirtualFile) IsFolder() bool { return f.Kind == KindFolder }
