// Package roster imports clan rosters from CSV exports. Game exports are
// messy: headers vary between client versions, ranks come in a handful of
// spellings, and join dates arrive in whatever format the exporting tool
// preferred. The importer detects the columns, applies a fixed set of
// correction rules per row, and reports what it did so the caller can show
// the outcome before anything is written.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// RowStatus describes what happened to one CSV row.
type RowStatus string

const (
	RowImported  RowStatus = "imported"
	RowCorrected RowStatus = "corrected" // imported after correction rules changed it
	RowRejected  RowStatus = "rejected"
)

// Row is the per-row outcome of a parse.
type Row struct {
	Line     int       `json:"line"`
	Status   RowStatus `json:"status"`
	Name     string    `json:"name"`
	Rank     string    `json:"rank"`
	Class    string    `json:"class"`
	JoinedAt *time.Time `json:"joined_at"`
	Notes    []string  `json:"notes,omitempty"`  // corrections applied
	Reason   string    `json:"reason,omitempty"` // rejection reason
}

// ImportResult is the full outcome of parsing one roster CSV.
type ImportResult struct {
	Rows      []Row `json:"rows"`
	Imported  int   `json:"imported"`
	Corrected int   `json:"corrected"`
	Rejected  int   `json:"rejected"`
}

// Accepted returns the rows that survived parsing (imported or corrected).
func (r *ImportResult) Accepted() []Row {
	var accepted []Row
	for _, row := range r.Rows {
		if row.Status != RowRejected {
			accepted = append(accepted, row)
		}
	}
	return accepted
}

// Column aliases seen across game roster exports, lowercased.
var columnAliases = map[string]string{
	"name":        "name",
	"member":      "name",
	"member name": "name",
	"character":   "name",
	"rank":        "rank",
	"role":        "rank",
	"grade":       "rank",
	"class":       "class",
	"job":         "class",
	"spec":        "class",
	"joined":      "joined",
	"join date":   "joined",
	"joined at":   "joined",
	"member since": "joined",
}

// Rank aliases normalized to the canonical ranks used in the roster table.
// Exact match first, as the grocery categorizer does; unknown ranks pass
// through title-cased.
var rankAliases = map[string]string{
	"leader":      "Leader",
	"guildmaster": "Leader",
	"gm":          "Leader",
	"officer":     "Officer",
	"veteran":     "Veteran",
	"vet":         "Veteran",
	"member":      "Member",
	"raider":      "Member",
	"recruit":     "Recruit",
	"trial":       "Recruit",
	"initiate":    "Recruit",
	"alt":         "Alt",
}

// Join-date layouts tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"01/02/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Parse reads a roster CSV and applies the correction rules. It returns an
// error only when the input is not usable CSV at all (unreadable, or no
// name column); individual bad rows are reported as rejected, not errors.
func Parse(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports pad rows inconsistently
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty roster file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(collapseSpace(h))
		if canonical, ok := columnAliases[key]; ok {
			if _, taken := cols[canonical]; !taken {
				cols[canonical] = i
			}
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("no name column found in header %v", header)
	}

	result := &ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Rows = append(result.Rows, Row{
				Line:   line,
				Status: RowRejected,
				Reason: fmt.Sprintf("malformed row: %v", err),
			})
			result.Rejected++
			continue
		}

		row := parseRow(line, record, cols)
		result.Rows = append(result.Rows, row)
		switch row.Status {
		case RowImported:
			result.Imported++
		case RowCorrected:
			result.Corrected++
		case RowRejected:
			result.Rejected++
		}
	}
	return result, nil
}

func parseRow(line int, record []string, cols map[string]int) Row {
	row := Row{Line: line, Status: RowImported}

	raw := field(record, cols, "name")
	name := collapseSpace(raw)
	if name == "" {
		row.Status = RowRejected
		row.Reason = "missing name"
		return row
	}
	if name != raw {
		row.Notes = append(row.Notes, "normalized whitespace in name")
	}
	row.Name = name

	rawRank := collapseSpace(field(record, cols, "rank"))
	row.Rank = normalizeRank(rawRank)
	if rawRank != "" && row.Rank != rawRank {
		row.Notes = append(row.Notes, fmt.Sprintf("rank %q normalized to %q", rawRank, row.Rank))
	}

	row.Class = collapseSpace(field(record, cols, "class"))

	if rawDate := collapseSpace(field(record, cols, "joined")); rawDate != "" {
		joined, layout, ok := parseJoinDate(rawDate)
		if !ok {
			row.Notes = append(row.Notes, fmt.Sprintf("unrecognized join date %q dropped", rawDate))
		} else {
			row.JoinedAt = &joined
			if layout != dateLayouts[0] {
				row.Notes = append(row.Notes, fmt.Sprintf("join date %q read as %s", rawDate, joined.Format(dateLayouts[0])))
			}
		}
	}

	if len(row.Notes) > 0 {
		row.Status = RowCorrected
	}
	return row
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// normalizeRank maps a raw rank through the alias table. Unknown non-empty
// ranks are title-cased; empty falls back to Member.
func normalizeRank(raw string) string {
	if raw == "" {
		return "Member"
	}
	if canonical, ok := rankAliases[strings.ToLower(raw)]; ok {
		return canonical
	}
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
}

func parseJoinDate(raw string) (time.Time, string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), layout, true
		}
	}
	return time.Time{}, "", false
}

// collapseSpace trims and collapses internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
