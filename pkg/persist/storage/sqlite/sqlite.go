// Package sqlite implements the replay repository on SQLite using the pure
// Go driver, with goose-managed migrations.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/davidmovas/pokespire/pkg/persist"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Config holds SQLite repository configuration.
type Config struct {
	// Path to the SQLite database file. Use ":memory:" for in-memory.
	Path string

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// Logger receives operational events; nil uses the standard logger.
	Logger *logrus.Logger
}

// DefaultConfig returns sensible defaults for game usage.
func DefaultConfig(path string) Config {
	return Config{
		Path:      path,
		EnableWAL: true,
	}
}

var _ persist.ReplayRepository = (*Repository)(nil)

// Repository is the SQLite-backed replay store.
type Repository struct {
	db  *sql.DB
	log *logrus.Logger
}

// Open opens the database, runs pending migrations, and returns the
// repository.
func Open(cfg Config) (*Repository, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if cfg.EnableWAL {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.WithField("path", cfg.Path).Debug("replay store opened")
	return &Repository{db: db, log: log}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a replay record.
func (r *Repository) Save(ctx context.Context, record *persist.ReplayRecord) error {
	query, args, err := sq.Insert("battle_replays").
		Columns("id", "battle_id", "seed", "setup", "journal", "final_state",
			"log", "phase", "rounds", "gold_earned", "created_at").
		Values(record.ID, record.BattleID, int64(record.Seed), record.Setup,
			record.Journal, record.FinalState, record.Log, record.Phase,
			record.Rounds, record.GoldEarned, record.CreatedAt.Unix()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save replay %s: %w", record.ID, err)
	}
	r.log.WithFields(logrus.Fields{
		"replay_id": record.ID,
		"battle_id": record.BattleID,
		"phase":     record.Phase,
	}).Info("replay saved")
	return nil
}

// Get retrieves a record by id.
func (r *Repository) Get(ctx context.Context, id string) (*persist.ReplayRecord, error) {
	query, args, err := selectReplays().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	record, err := scanReplay(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get replay %s: %w", id, err)
	}
	return record, nil
}

// List returns the newest records, most recent first.
func (r *Repository) List(ctx context.Context, limit int) ([]*persist.ReplayRecord, error) {
	builder := selectReplays().OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replays: %w", err)
	}
	defer rows.Close()

	var out []*persist.ReplayRecord
	for rows.Next() {
		record, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan replay: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Delete removes a record by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("battle_replays").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete replay %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return persist.ErrNotFound
	}
	return nil
}

func selectReplays() sq.SelectBuilder {
	return sq.Select("id", "battle_id", "seed", "setup", "journal",
		"final_state", "log", "phase", "rounds", "gold_earned", "created_at").
		From("battle_replays")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReplay(row rowScanner) (*persist.ReplayRecord, error) {
	var record persist.ReplayRecord
	var seed, createdAt int64
	if err := row.Scan(&record.ID, &record.BattleID, &seed, &record.Setup,
		&record.Journal, &record.FinalState, &record.Log, &record.Phase,
		&record.Rounds, &record.GoldEarned, &createdAt); err != nil {
		return nil, err
	}
	record.Seed = uint64(seed)
	record.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &record, nil
}
