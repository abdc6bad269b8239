// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source labels recorded per corpus file.
const (
	sourceArticles = "NASA Articles"
	sourceTaskBook = "Task Book Projects"
)

// LoadCSV loads the configured corpus files, standardizing each file's
// columns into the articles table. A missing or unreadable file is a warning,
// not a failure; LoadCSV errors only when no file could be loaded at all.
func (s *Store) LoadCSV(ctx context.Context, articlesPath, taskBookPath string) error {
	type corpusFile struct {
		path   string
		source string
		load   func(context.Context, string) (int, error)
	}
	files := []corpusFile{
		{path: articlesPath, source: sourceArticles, load: s.loadArticles},
		{path: taskBookPath, source: sourceTaskBook, load: s.loadTaskBook},
	}

	loaded := 0
	for _, f := range files {
		if f.path == "" {
			continue
		}
		n, err := f.load(ctx, f.path)
		if err != nil {
			s.log.WithField("file", f.path).Warnf("corpus file not loaded: %v", err)
			continue
		}
		s.log.WithField("file", f.path).Infof("loaded %d rows from %s", n, f.source)
		s.sources = append(s.sources, f.source)
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("no corpus files could be loaded")
	}
	return nil
}

// loadArticles ingests the publications corpus. The file carries Title and
// Link columns, with Description optional; a missing description falls back
// to the title so substring search still has text to match.
func (s *Store) loadArticles(ctx context.Context, path string) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	n := 0
	err = s.insertRows(ctx, func(insert func(title, description, link, author, date, tags string) error) error {
		for _, row := range rows {
			title := strings.TrimSpace(row["Title"])
			if title == "" {
				continue
			}
			description := strings.TrimSpace(row["Description"])
			if description == "" {
				description = title
			}
			if err := insert(title, description, row["Link"], row["Author"], row["Date"], row["Tags"]); err != nil {
				return err
			}
			n++
		}
		return nil
	}, sourceArticles)
	return n, err
}

// loadTaskBook ingests the Task Book projects corpus, mapping its columns to
// the canonical ones. The principal investigator and research area are folded
// into the description so they are searchable.
func (s *Store) loadTaskBook(ctx context.Context, path string) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	n := 0
	err = s.insertRows(ctx, func(insert func(title, description, link, author, date, tags string) error) error {
		for _, row := range rows {
			title := strings.TrimSpace(row["title"])
			if title == "" {
				continue
			}
			pi := strings.TrimSpace(row["principal_investigator"])
			description := fmt.Sprintf("PI: %s | %s | %s", pi, row["research_area"], row["abstract"])
			if err := insert(title, description, row["url"], pi, row["fiscal_year"], row["keywords"]); err != nil {
				return err
			}
			n++
		}
		return nil
	}, sourceTaskBook)
	return n, err
}

// insertRows runs fill inside one transaction with a prepared insert.
func (s *Store) insertRows(ctx context.Context, fill func(insert func(title, description, link, author, date, tags string) error) error, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (title, description, link, author, date, tags, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	err = fill(func(title, description, link, author, date, tags string) error {
		_, err := stmt.ExecContext(ctx, title, description, link, author, date, tags, source)
		if err != nil {
			return fmt.Errorf("inserting corpus row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}

// readCSV reads a whole CSV file into header-keyed rows. Rows shorter than
// the header are padded; longer rows keep only the headed columns.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
