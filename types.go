package persondex

import (
	"time"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// Status is the reported status a note carries about a person.
type Status string

// Note status constants.
const (
	StatusUnspecified       Status = ""
	StatusInformationSought Status = "information_sought"
	StatusIsNoteAuthor      Status = "is_note_author"
	StatusBelievedAlive     Status = "believed_alive"
	StatusBelievedMissing   Status = "believed_missing"
	StatusBelievedDead      Status = "believed_dead"
)

// Repo is a missing-person repository, usually one per disaster event.
type Repo struct {
	Name      string
	Title     string
	Activated bool
	CreatedAt time.Time
}

// Person is a missing-person record.
type Person struct {
	ID             string
	GivenName      string
	FamilyName     string
	FullName       string
	AlternateNames string
	HomeCity       string
	HomeState      string
	HomeCountry    string
	Expiry         int64
	CreatedAt      time.Time
}

// PersonInput holds the writable fields of a person record.
// At least one of GivenName and FamilyName is required.
type PersonInput struct {
	GivenName      string
	FamilyName     string
	FullName       string
	AlternateNames string
	HomeCity       string
	HomeState      string
	HomeCountry    string
	Expiry         int64
}

// Note is one append-only status update on a person record.
type Note struct {
	ID         string
	AuthorName string
	Content    string
	Status     Status
	CreatedAt  time.Time
}

func fromRepo(r domrepo.Repo) Repo {
	return Repo{
		Name:      r.Name(),
		Title:     r.Title(),
		Activated: r.Activated(),
		CreatedAt: time.UnixMilli(r.CreatedAt()).UTC(),
	}
}

func fromPerson(p domper.Person) Person {
	return Person{
		ID:             p.ID(),
		GivenName:      p.GivenName(),
		FamilyName:     p.FamilyName(),
		FullName:       p.FullName(),
		AlternateNames: p.AlternateNames(),
		HomeCity:       p.HomeCity(),
		HomeState:      p.HomeState(),
		HomeCountry:    p.HomeCountry(),
		Expiry:         p.Expiry(),
		CreatedAt:      time.UnixMilli(p.CreatedAt()).UTC(),
	}
}

func fromPersons(ps []domper.Person) []Person {
	out := make([]Person, len(ps))
	for i := range ps {
		out[i] = fromPerson(ps[i])
	}
	return out
}

func fromNote(n domper.Note) Note {
	return Note{
		ID:         n.ID(),
		AuthorName: n.AuthorName(),
		Content:    n.Content(),
		Status:     Status(n.Status()),
		CreatedAt:  time.UnixMilli(n.CreatedAt()).UTC(),
	}
}
