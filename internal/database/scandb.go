package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ecodena/greenscan/internal/model"
)

// ScanDB provides SQLite-based storage for scan history.
//
// Design decision: We use a single database file for all scans rather
// than one file per domain. This keeps cross-domain history queries
// trivial and makes backup a single-file copy.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScanDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	dbPath := filepath.Join(dbDir, "greenscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Scans store one row per completed scan: headline figures for
	-- list views, full result as JSON for detail views.
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		url TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		pages_scanned INTEGER,
		rse_score INTEGER,
		carbon_score INTEGER,
		green_it_score INTEGER,
		avg_html_kb REAL,
		monthly_kgco2 REAL,
		failed INTEGER DEFAULT 0,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_domain ON scans(domain);
	CREATE INDEX IF NOT EXISTS idx_scans_timestamp ON scans(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveScan persists a completed scan result and returns its row ID.
func (sdb *ScanDB) SaveScan(ctx context.Context, result *model.ScanResult) (int64, error) {
	if result == nil || result.Report == nil {
		return 0, fmt.Errorf("cannot save scan without a report")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize scan result: %w", err)
	}

	var monthlyKg float64
	if result.Estimate != nil {
		monthlyKg = result.Estimate.MonthlyKgCO2
	}

	failed := 0
	if result.Report.Failed() {
		failed = 1
	}

	query := `
	INSERT INTO scans (domain, url, pages_scanned, rse_score, carbon_score, green_it_score, avg_html_kb, monthly_kgco2, failed, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := sdb.db.ExecContext(ctx, query,
		result.Report.Domain,
		result.Report.URL,
		result.Report.PagesScanned,
		result.Report.GlobalRSEScore,
		result.Report.GlobalCarbonScore,
		result.Report.GlobalGreenITScore,
		result.Report.AvgHTMLKB,
		monthlyKg,
		failed,
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan: %w", err)
	}

	return res.LastInsertId()
}

// ScanMetadata contains summary information about a stored scan.
// This is used for displaying scan history without loading the full
// result.
type ScanMetadata struct {
	// ID is the unique identifier of the scan in the database.
	ID int64

	// Domain is the scanned registrable domain.
	Domain string

	// URL is the normalized base URL the scan started from.
	URL string

	// Timestamp is when the scan was performed.
	Timestamp time.Time

	// PagesScanned is the number of pages analyzed.
	PagesScanned int

	// RSEScore, CarbonScore and GreenITScore are the site-level scores.
	RSEScore     int
	CarbonScore  int
	GreenITScore int

	// AvgHTMLKB is the average HTML page size in kilobytes.
	AvgHTMLKB float64

	// MonthlyKgCO2 is the estimated monthly emissions in kilograms.
	// Zero when the crawl failed.
	MonthlyKgCO2 float64

	// Failed is true for scans whose home page could not be fetched.
	Failed bool
}

// ListScans retrieves scan metadata, newest first. An empty domain
// lists all scans; limit <= 0 means no limit.
func (sdb *ScanDB) ListScans(ctx context.Context, domain string, limit int) ([]ScanMetadata, error) {
	query := `
	SELECT id, domain, url, timestamp, pages_scanned, rse_score, carbon_score, green_it_score, avg_html_kb, monthly_kgco2, failed
	FROM scans
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if domain != "" {
		query += " AND domain = ?"
		args = append(args, domain)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var results []ScanMetadata
	for rows.Next() {
		var meta ScanMetadata
		var timestamp string
		var failed int

		err := rows.Scan(
			&meta.ID,
			&meta.Domain,
			&meta.URL,
			&timestamp,
			&meta.PagesScanned,
			&meta.RSEScore,
			&meta.CarbonScore,
			&meta.GreenITScore,
			&meta.AvgHTMLKB,
			&meta.MonthlyKgCO2,
			&failed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		meta.Failed = failed != 0
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetScan retrieves a full scan result by its database ID.
// Returns nil without error when no such scan exists.
func (sdb *ScanDB) GetScan(ctx context.Context, id int64) (*model.ScanResult, error) {
	query := `
	SELECT result_json FROM scans
	WHERE id = ?
	`

	var resultJSON string
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	var result model.ScanResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse scan result: %w", err)
	}

	return &result, nil
}

// GetLatestScan retrieves the most recent scan result for a domain.
// Returns nil without error when the domain has never been scanned.
func (sdb *ScanDB) GetLatestScan(ctx context.Context, domain string) (*model.ScanResult, error) {
	query := `
	SELECT result_json FROM scans
	WHERE domain = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var resultJSON string
	err := sdb.db.QueryRowContext(ctx, query, domain).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	var result model.ScanResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse scan result: %w", err)
	}

	return &result, nil
}

// ListScannedDomains returns all distinct domains with stored scans.
func (sdb *ScanDB) ListScannedDomains(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT domain FROM scans
	ORDER BY domain
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}

	return domains, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may
// return. The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending
// on configuration. If parsing fails with all formats, returns zero
// time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
