// Package importer loads person records in bulk from CSV files, the format
// relief organizations typically exchange after a disaster.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	personuc "github.com/relief-cloud/persondex/internal/usecase/person"
)

// MaxRows caps a single import to keep request bodies bounded.
const MaxRows = 5000

// RowError records why one CSV row was rejected.
type RowError struct {
	Line int    `json:"line"`
	Err  string `json:"error"`
}

// Report summarizes an import run.
type Report struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors,omitempty"`
}

// Service imports person records from CSV.
type Service struct {
	persons PersonCreator
	maxRows int
}

// New creates an import service.
func New(persons PersonCreator) *Service {
	return &Service{persons: persons, maxRows: MaxRows}
}

// WithMaxRows configures the row cap.
func (s *Service) WithMaxRows(n int) *Service {
	if n > 0 {
		s.maxRows = n
	}
	return s
}

// recognized CSV columns mapped to CreateInput fields
var columnNames = map[string]struct{}{
	"given_name":      {},
	"family_name":     {},
	"full_name":       {},
	"alternate_names": {},
	"home_city":       {},
	"home_state":      {},
	"home_country":    {},
	"expiry":          {},
}

// Import reads CSV rows from r and creates one person per row. The first
// row must be a header naming at least one of given_name or family_name.
// Row failures are collected per line and never abort the run.
func (s *Service) Import(ctx context.Context, repoName string, r io.Reader) (Report, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Report{}, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	line := 1
	for {
		line++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rep.Skipped++
			rep.Errors = append(rep.Errors, RowError{Line: line, Err: err.Error()})
			continue
		}
		if rep.Created+rep.Skipped >= s.maxRows {
			return rep, fmt.Errorf("import exceeds %d rows", s.maxRows)
		}

		in := rowToInput(cols, record)
		if _, err := s.persons.Create(ctx, repoName, in); err != nil {
			rep.Skipped++
			rep.Errors = append(rep.Errors, RowError{Line: line, Err: err.Error()})
			continue
		}
		rep.Created++
	}
	return rep, nil
}

// mapHeader resolves column positions. Unknown columns are ignored so
// upstream exports can carry extra fields.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := columnNames[name]; ok {
			cols[name] = i
		}
	}
	if _, okGiven := cols["given_name"]; !okGiven {
		if _, okFamily := cols["family_name"]; !okFamily {
			return nil, fmt.Errorf("header needs given_name or family_name, got %v", header)
		}
	}
	return cols, nil
}

func rowToInput(cols map[string]int, record []string) personuc.CreateInput {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	expiry, _ := strconv.ParseInt(field("expiry"), 10, 64)
	return personuc.CreateInput{
		GivenName:      field("given_name"),
		FamilyName:     field("family_name"),
		FullName:       field("full_name"),
		AlternateNames: field("alternate_names"),
		HomeCity:       field("home_city"),
		HomeState:      field("home_state"),
		HomeCountry:    field("home_country"),
		Expiry:         expiry,
	}
}
