// Package session owns the mutation rules for the aggregate project state:
// which files are open, which is active, the append-only terminal log, and
// the build/deploy status machines.
package session

import (
	"time"

	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/template"
	"github.com/omegalabs/studio/internal/vfs"
)

const initialLogContent = "# OMEGA STUDIO\n\nEnvironment initialized.\nMode: Autonomous\n\nAwaiting directive...\n"

// New creates a session seeded with the template scaffold. Every session
// starts with a root folder and an open SYSTEM_LOG.md.
func New(name string, tmpl models.Template) *models.Session {
	files, _ := vfs.CreateFolder(nil, models.RootID, name)
	rootID := files[0].ID
	files, _ = vfs.CreateFile(files, rootID, "SYSTEM_LOG.md", initialLogContent)
	logID := files[1].ID

	files = template.Apply(files, rootID, tmpl)

	s := &models.Session{
		ID:           models.NewID(),
		Name:         name,
		Template:     tmpl,
		Files:        files,
		ActiveFileID: logID,
		OpenFileIDs:  []string{logID},
		BuildStatus:  models.BuildIdle,
		DeployStatus: models.DeployIdle,
		Version:      "1.1",
		LastModified: time.Now().UTC(),
	}
	AppendLog(s, models.SourceOmega, "Omega core initialized.")
	return s
}

// OpenFile marks a file as open and active. Folders and unknown ids are
// ignored.
func OpenFile(s *models.Session, id string) {
	f := vfs.Find(s.Files, id)
	if f == nil || f.Kind != models.KindFile {
		return
	}
	s.ActiveFileID = id
	for _, open := range s.OpenFileIDs {
		if open == id {
			return
		}
	}
	s.OpenFileIDs = append(s.OpenFileIDs, id)
	touch(s)
}

// CloseFile removes a file from the open list. The file stays in the store;
// deletion is not part of the design. If the closed file was active, the
// first remaining open file becomes active, or none when the list is empty.
func CloseFile(s *models.Session, id string) {
	open := s.OpenFileIDs[:0]
	for _, fid := range s.OpenFileIDs {
		if fid != id {
			open = append(open, fid)
		}
	}
	s.OpenFileIDs = open

	if s.ActiveFileID == id {
		if len(open) > 0 {
			s.ActiveFileID = open[0]
		} else {
			s.ActiveFileID = ""
		}
	}
	touch(s)
}

// AppendLog appends one source-tagged line to the terminal log. Single
// writer; timestamps are non-decreasing by construction.
func AppendLog(s *models.Session, source models.LogSource, message string) {
	s.Logs = append(s.Logs, models.LogEntry{
		ID:        models.NewID(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		Message:   message,
	})
}

// SetBuildStatus records a build machine transition.
func SetBuildStatus(s *models.Session, status models.BuildStatus) {
	s.BuildStatus = status
	touch(s)
}

// SetDeployStatus records a deploy machine transition.
func SetDeployStatus(s *models.Session, status models.DeployStatus) {
	s.DeployStatus = status
	touch(s)
}

func touch(s *models.Session) {
	s.LastModified = time.Now().UTC()
}
