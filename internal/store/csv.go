package store

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"go-leadscout-automation/internal/scraper"
)

var csvHeader = []string{"link", "author", "ai_reason", "post_text"}

// LeadStore persists accepted leads to an append-only CSV file. Rows are never
// rewritten or removed, within or across runs.
type LeadStore struct {
	path string
}

func NewLeadStore(path string) *LeadStore {
	return &LeadStore{path: path}
}

// Load reads every previously saved lead link and the resumed lead count.
// A missing, empty or malformed file is treated as an empty store so a bad
// output file never kills a run.
func (s *LeadStore) Load() ([]string, int) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("📂 Output file %q not found. Starting fresh.", s.path)
		} else {
			log.Printf("⚠️ Could not open %q: %v. Starting fresh.", s.path, err)
		}
		return nil, 0
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		log.Printf("⚠️ Could not parse %q: %v. Starting fresh.", s.path, err)
		return nil, 0
	}
	if len(rows) == 0 {
		return nil, 0
	}

	linkCol := -1
	for i, name := range rows[0] {
		if name == "link" {
			linkCol = i
			break
		}
	}
	if linkCol == -1 {
		log.Printf("⚠️ %q has no link column. Starting fresh.", s.path)
		return nil, 0
	}

	var links []string
	for _, row := range rows[1:] {
		if linkCol < len(row) && row[linkCol] != "" {
			links = append(links, row[linkCol])
		}
	}
	log.Printf("📋 Resuming session. Loaded %d previously found leads.", len(links))
	return links, len(links)
}

// Append durably adds one lead. The header row is written only when this call
// creates the file; existing content is never truncated.
func (s *LeadStore) Append(lead scraper.Lead) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write([]string{lead.Link, lead.Author, lead.Reason, lead.Text}); err != nil {
		return fmt.Errorf("write lead row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return nil
}

// List returns every stored lead, oldest first.
func (s *LeadStore) List() ([]scraper.Lead, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	var leads []scraper.Lead
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		leads = append(leads, scraper.Lead{
			Link:   row[0],
			Author: row[1],
			Reason: row[2],
			Text:   row[3],
		})
	}
	return leads, nil
}
