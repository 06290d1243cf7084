// Package engine - errors.go
// Comparable error values and rich error types the app layer branches on.
package engine

import "fmt"

// engineErr is a lightweight comparable error type, usable with errors.Is.
type engineErr string

func (e engineErr) Error() string { return string(e) }

var (
	// ErrNoReplays is the legitimate negative result: nothing matching was
	// found under any of the roster's uploader accounts.
	ErrNoReplays = engineErr("no matching replays found")
)

// AlreadyReportedError means the destination folder for this match key
// already holds replays: the series was reported before. It carries the
// prior result so the caller can show it instead of re-uploading.
type AlreadyReportedError struct {
	GroupID  string
	Opponent string
	Summary  string
}

func (e *AlreadyReportedError) Error() string {
	return fmt.Sprintf("series already reported in group %s (%s)", e.GroupID, e.Summary)
}
