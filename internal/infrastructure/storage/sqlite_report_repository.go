package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"leafcheck/internal/domain/entity"
	"leafcheck/internal/domain/port"
)

// SQLiteReportRepository хранит историю анализов в SQLite.
type SQLiteReportRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteReportRepository открывает базу и создаёт схему при необходимости.
func NewSQLiteReportRepository(dbPath string) (*SQLiteReportRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	repo := &SQLiteReportRepository{db: db}
	if err := repo.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *SQLiteReportRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		image_width INTEGER NOT NULL,
		image_height INTEGER NOT NULL,
		brown_percentage REAL NOT NULL,
		yellow_percentage REAL NOT NULL,
		total_percentage REAL NOT NULL,
		dominant_symptom TEXT NOT NULL,
		severity TEXT NOT NULL,
		leaf_coverage REAL DEFAULT 0,
		has_symptoms INTEGER DEFAULT 0,
		regions TEXT NOT NULL DEFAULT '[]'
	);

	CREATE INDEX IF NOT EXISTS idx_reports_user_id ON reports(user_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Save сохраняет отчёт пользователя и возвращает ID записи.
func (r *SQLiteReportRepository) Save(ctx context.Context, userID int64, report *entity.LeafReport) (int64, error) {
	if report == nil {
		return 0, fmt.Errorf("save report: nil report")
	}

	regions := report.Regions
	if regions == nil {
		regions = []entity.RegionFeature{}
	}
	regionsJSON, err := json.Marshal(regions)
	if err != nil {
		return 0, fmt.Errorf("encode regions: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (
			user_id, created_at, image_width, image_height,
			brown_percentage, yellow_percentage, total_percentage, dominant_symptom,
			severity, leaf_coverage, has_symptoms, regions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, time.Now().UTC(), report.ImageWidth, report.ImageHeight,
		report.Symptoms.BrownPercentage, report.Symptoms.YellowPercentage,
		report.Symptoms.TotalPercentage, string(report.Symptoms.Dominant),
		string(report.Severity), report.LeafCoverage, report.HasSymptoms, string(regionsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	return res.LastInsertId()
}

// ListByUser возвращает не более limit последних отчётов пользователя, новые первыми.
func (r *SQLiteReportRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.ReportRecord, error) {
	if limit <= 0 {
		return []entity.ReportRecord{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, created_at, image_width, image_height,
			brown_percentage, yellow_percentage, total_percentage, dominant_symptom,
			severity, leaf_coverage, has_symptoms, regions
		FROM reports
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	records := make([]entity.ReportRecord, 0, limit)
	for rows.Next() {
		var (
			rec         entity.ReportRecord
			dominant    string
			severity    string
			regionsJSON string
		)
		rep := &rec.Report
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.CreatedAt, &rep.ImageWidth, &rep.ImageHeight,
			&rep.Symptoms.BrownPercentage, &rep.Symptoms.YellowPercentage,
			&rep.Symptoms.TotalPercentage, &dominant,
			&severity, &rep.LeafCoverage, &rep.HasSymptoms, &regionsJSON,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rep.Symptoms.Dominant = entity.SymptomKind(dominant)
		rep.Severity = entity.Severity(severity)
		if err := json.Unmarshal([]byte(regionsJSON), &rep.Regions); err != nil {
			return nil, fmt.Errorf("decode regions of report %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close закрывает соединение с базой.
func (r *SQLiteReportRepository) Close() error {
	return r.db.Close()
}

var _ port.ReportRepository = (*SQLiteReportRepository)(nil)
