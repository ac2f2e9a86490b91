// Package output writes generated artifacts, touching a file only when its
// content changes.
package output

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/mkoptions/internal/domain"
)

// Status reports what happened to one artifact.
type Status int

const (
	// Generated means the file was created or its content replaced.
	Generated Status = iota
	// UpToDate means the file already had the rendered content.
	UpToDate
	// Pending means the file would change but the writer is in dry-run mode.
	Pending
)

func (s Status) String() string {
	switch s {
	case Generated:
		return "generated"
	case UpToDate:
		return "up-to-date"
	case Pending:
		return "pending"
	}
	return "unknown"
}

// Artifact is one rendered output file.
type Artifact struct {
	Dir     string
	Name    string
	Content string
}

// Path returns the destination path of the artifact.
func (a Artifact) Path() string {
	return filepath.Join(a.Dir, a.Name)
}

// Writer writes artifacts if their content differs from what is on disk.
type Writer struct {
	DryRun bool
	log    *logrus.Logger
}

// NewWriter creates a Writer. In dry-run mode nothing is written and the
// pending changes are logged as unified diffs.
func NewWriter(dryRun bool, log *logrus.Logger) *Writer {
	return &Writer{DryRun: dryRun, log: log}
}

// Write writes a single artifact.
func (w *Writer) Write(a Artifact) (Status, error) {
	path := a.Path()
	current, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(current, []byte(a.Content)) {
			w.log.Infof("%s is up-to-date", a.Name)
			return UpToDate, nil
		}
	case errors.Is(err, fs.ErrNotExist):
		current = nil
	default:
		return 0, domain.NewError("write", path, 0, "could not read existing file", err)
	}

	if w.DryRun {
		w.log.WithField("file", path).Infof("[DRY-RUN] %s would change", a.Name)
		w.log.Debug(Diff(a.Name, string(current), a.Content))
		return Pending, nil
	}

	if err := writeAtomic(path, []byte(a.Content)); err != nil {
		return 0, domain.NewError("write", path, 0, "could not write file", err)
	}
	w.log.Infof("generated %s", a.Name)
	return Generated, nil
}

// WriteAll writes artifacts in order and stops at the first failure.
func (w *Writer) WriteAll(artifacts []Artifact) (map[string]Status, error) {
	statuses := make(map[string]Status, len(artifacts))
	for _, a := range artifacts {
		st, err := w.Write(a)
		if err != nil {
			return statuses, err
		}
		statuses[a.Path()] = st
	}
	return statuses, nil
}

// Diff returns a unified diff turning old into new.
func Diff(name, old, new string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(new),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
