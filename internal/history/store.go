package history

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
)

// Run is one recorded audit run.
type Run struct {
	ID         uuid.UUID
	SourceFile string
	Project    string
	Score      float64
	RiskRating string
	GoNoGo     string
	ReportPath string
	CreatedAt  time.Time
}

// Store keeps the local run history in an embedded SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_runs (
	id          TEXT PRIMARY KEY,
	source_file TEXT NOT NULL,
	project     TEXT NOT NULL,
	score       REAL NOT NULL,
	risk_rating TEXT NOT NULL,
	go_no_go    TEXT NOT NULL,
	report_path TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_runs_created_at ON audit_runs (created_at DESC);
`

// Open opens (and if needed bootstraps) the history database at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.OutputError("open history db "+path, err)
	}
	// single writer; the embedded driver dislikes concurrent connections
	db.SetMaxOpenConns(1)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		_ = db.Close()
		return nil, common.OutputError("ping history db "+path, err)
	}
	if _, err := db.ExecContext(ctx2, schema); err != nil {
		_ = db.Close()
		return nil, common.OutputError("init history schema", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one finished run. A fresh ID is assigned when absent.
func (s *Store) Record(ctx context.Context, run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_runs (id, source_file, project, score, risk_rating, go_no_go, report_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.SourceFile, run.Project, run.Score,
		run.RiskRating, run.GoNoGo, run.ReportPath, run.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, common.OutputError("record audit run", err)
	}
	s.logger.Info("history.record.ok",
		"run_id", run.ID.String(),
		"project", run.Project,
		"score", run.Score,
	)
	return run.ID, nil
}

// List returns the most recent runs, newest first. limit<=0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, source_file, project, score, risk_rating, go_no_go, report_path, created_at
	      FROM audit_runs ORDER BY created_at DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, q+" LIMIT ?", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, common.OutputError("query audit runs", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var id string
		if err := rows.Scan(&id, &r.SourceFile, &r.Project, &r.Score,
			&r.RiskRating, &r.GoNoGo, &r.ReportPath, &r.CreatedAt); err != nil {
			return nil, common.OutputError("scan audit run", err)
		}
		if parsed, err := uuid.Parse(id); err == nil {
			r.ID = parsed
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
