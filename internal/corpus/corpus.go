// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus manages the locally loaded, read-only dataset of
// space-biology publications and projects. The corpus is loaded once from
// CSV at startup into SQLite and serves as the always-available search
// source feeding the unifier.
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/bioengine/pkg/types"
)

// Store holds the corpus SQLite database.
type Store struct {
	db      *sql.DB
	log     *logrus.Logger
	sources []string
}

// NewStore opens the corpus database and creates the schema. The default
// location is an in-memory database; the corpus has no persistence
// requirement and is rebuilt from CSV on every start.
func NewStore(cfg types.CorpusConfig, log *logrus.Logger) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = ":memory:"
	}
	if log == nil {
		log = logrus.New()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}
	// An in-memory SQLite database exists per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: log}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating corpus schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Loaded reports whether any corpus rows are present.
func (s *Store) Loaded() bool {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

// Search returns up to limit records whose title, description, or link
// contains the query substring, case-insensitively. An empty query returns
// no results. All records carry the fixed local relevance prior.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Record, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []types.Record{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, description, link, author, date, tags
		 FROM articles
		 WHERE instr(lower(title), ?) > 0
		    OR instr(lower(description), ?) > 0
		    OR instr(lower(link), ?) > 0
		 LIMIT ?`,
		q, q, q, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching corpus: %w", err)
	}
	defer rows.Close()

	results := make([]types.Record, 0, limit)
	for rows.Next() {
		var title, description, link, author, date, tags string
		if err := rows.Scan(&title, &description, &link, &author, &date, &tags); err != nil {
			return nil, fmt.Errorf("scanning corpus row: %w", err)
		}
		results = append(results, buildRecord(title, description, link, author, date, tags))
	}
	return results, rows.Err()
}

// Stats summarizes the loaded corpus using the same title heuristics the
// frontend categories rely on.
type Stats struct {
	Loaded           bool     `json:"loaded"`
	TotalArticles    int      `json:"total_articles"`
	ResearchPapers   int      `json:"research_papers"`
	OSDRData         int      `json:"osdr_data"`
	TaskBookProjects int      `json:"taskbook_projects"`
	Sources          []string `json:"sources"`
}

// Stats returns counts of the loaded corpus by display category.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Sources: append([]string{}, s.sources...)}

	rows, err := s.db.QueryContext(ctx, `SELECT title FROM articles`)
	if err != nil {
		return st, fmt.Errorf("reading corpus titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return st, fmt.Errorf("scanning corpus title: %w", err)
		}
		st.TotalArticles++
		switch classify(title) {
		case "OSDR Data":
			st.OSDRData++
		case "Task Book Grants":
			st.TaskBookProjects++
		default:
			st.ResearchPapers++
		}
	}
	st.Loaded = st.TotalArticles > 0
	return st, rows.Err()
}

func buildRecord(title, description, link, author, date, tags string) types.Record {
	authors := []string{}
	if author != "" {
		authors = []string{author}
	}
	return types.Record{
		ID:             "",
		Title:          title,
		Abstract:       description,
		Authors:        authors,
		Date:           normalizeDate(date, link),
		Keywords:       splitTags(tags),
		Link:           link,
		Source:         types.SourceLocal,
		Type:           classify(title),
		RelevanceScore: types.LocalRelevance,
		IsExternal:     false,
	}
}

// classify assigns a display category from title keywords.
func classify(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "osdr") || strings.Contains(t, "data"):
		return "OSDR Data"
	case strings.Contains(t, "task") || strings.Contains(t, "project"):
		return "Task Book Grants"
	default:
		return "Research Papers"
	}
}

// normalizeDate strips the Task Book fiscal-year prefix and, when the CSV
// carries no date at all, falls back to a publication-year estimate from the
// record's PMC identifier.
func normalizeDate(date, link string) string {
	date = strings.TrimSpace(date)
	if strings.HasPrefix(date, "FY ") {
		return strings.TrimPrefix(date, "FY ")
	}
	if date != "" && date != "N/A" {
		return date
	}
	return estimateYearFromLink(link)
}

var pmcIDPattern = regexp.MustCompile(`PMC(\d+)`)

// estimateYearFromLink guesses a publication year from the PMC identifier in
// a PubMed Central link. PMC ids are assigned roughly chronologically, so id
// ranges map to approximate years. Returns "" when the link carries no PMC id.
func estimateYearFromLink(link string) string {
	m := pmcIDPattern.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	switch {
	case id >= 10000000:
		return "2023"
	case id >= 8000000:
		return "2021"
	case id >= 6000000:
		return "2019"
	case id >= 4000000:
		return "2016"
	case id >= 2000000:
		return "2012"
	case id >= 1000000:
		return "2008"
	default:
		return "2005"
	}
}

func splitTags(tags string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(tags, func(r rune) bool { return r == ',' || r == ';' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
