package person

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the reported status of a person carried on a note.
type Status string

const (
	// StatusUnspecified is a note with no status change.
	StatusUnspecified Status = ""
	// StatusInformationSought marks a note from someone looking for the person.
	StatusInformationSought Status = "information_sought"
	// StatusIsNoteAuthor marks a note written by the person themselves.
	StatusIsNoteAuthor Status = "is_note_author"
	// StatusBelievedAlive marks a second-hand alive report.
	StatusBelievedAlive Status = "believed_alive"
	// StatusBelievedMissing marks a believed-missing report.
	StatusBelievedMissing Status = "believed_missing"
	// StatusBelievedDead marks a believed-dead report.
	StatusBelievedDead Status = "believed_dead"
)

// IsValid checks whether the status is one of the defined values.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnspecified, StatusInformationSought, StatusIsNoteAuthor,
		StatusBelievedAlive, StatusBelievedMissing, StatusBelievedDead:
		return true
	}
	return false
}

// Note is one append-only status update on a person record.
type Note struct {
	id         string
	authorName string
	content    string
	status     Status
	createdAt  int64
}

// NewNote validates and creates a Note.
func NewNote(authorName, content string, status Status) (Note, error) {
	authorName = strings.TrimSpace(authorName)
	content = strings.TrimSpace(content)
	if authorName == "" {
		return Note{}, fmt.Errorf("author_name is required")
	}
	if content == "" && status == StatusUnspecified {
		return Note{}, fmt.Errorf("note needs content or a status")
	}
	if !status.IsValid() {
		return Note{}, fmt.Errorf("unknown status %q", status)
	}
	return Note{
		id:         uuid.NewString(),
		authorName: authorName,
		content:    content,
		status:     status,
		createdAt:  time.Now().UnixMilli(),
	}, nil
}

// ReconstructNote creates a Note without validation (storage hydration).
func ReconstructNote(id, authorName, content string, status Status, createdAt int64) Note {
	return Note{id: id, authorName: authorName, content: content, status: status, createdAt: createdAt}
}

// ID returns the note identifier.
func (n *Note) ID() string { return n.id }

// AuthorName returns the note author's name.
func (n *Note) AuthorName() string { return n.authorName }

// Content returns the note text.
func (n *Note) Content() string { return n.content }

// Status returns the status carried by the note.
func (n *Note) Status() Status { return n.status }

// CreatedAt returns the creation timestamp in unix millis.
func (n *Note) CreatedAt() int64 { return n.createdAt }
