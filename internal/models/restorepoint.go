package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TagPrefix is the namespace for restore point tags.
	TagPrefix = "restore/"
	// BackupPrefix is the namespace for branches created when a
	// restore point is checked out non-destructively.
	BackupPrefix = "backup/"

	timestampLayout = "20060102-150405"
)

// RestorePoint is one entry in the restore tag namespace.
type RestorePoint struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Commit    string    `json:"commit"`
	Subject   string    `json:"subject,omitempty"`
}

// TagName generates the tag name for a restore point created at t.
// Format: restore/YYYYMMDD-HHMMSS
func TagName(t time.Time) string {
	return TagPrefix + t.Format(timestampLayout)
}

// ParseTagName extracts the creation timestamp from a restore tag name.
func ParseTagName(name string) (time.Time, error) {
	suffix, ok := strings.CutPrefix(name, TagPrefix)
	if !ok {
		return time.Time{}, fmt.Errorf("not a restore tag: %s", name)
	}
	t, err := time.Parse(timestampLayout, suffix)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid restore tag timestamp: %w", err)
	}
	return t, nil
}

// BackupBranch derives the branch name used when restoring a tag
// non-destructively: the restore/ prefix becomes backup/, the
// timestamp suffix is preserved.
func BackupBranch(tag string) string {
	if suffix, ok := strings.CutPrefix(tag, TagPrefix); ok {
		return BackupPrefix + suffix
	}
	return BackupPrefix + tag
}

// CommitMessage builds the commit message used when the creator finds
// uncommitted changes to record.
func CommitMessage(msg string) string {
	return "Restore point: " + msg
}

// TagMessage builds the annotation message carried by a restore tag.
func TagMessage(msg string) string {
	return "Restore: " + msg
}
