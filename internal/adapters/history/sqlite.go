package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"assistbot/internal/core/domain"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed activity log: commands, auto-replies and social
// media posts. Callers treat it as advisory.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS command_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command_text TEXT NOT NULL,
			command_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			result TEXT,
			created_at INTEGER NOT NULL,
			completed_at INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS auto_reply_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			platform TEXT NOT NULL,
			sender TEXT NOT NULL,
			original_message TEXT NOT NULL,
			reply_message TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'sent',
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS social_media_post (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			platform TEXT NOT NULL,
			content TEXT NOT NULL,
			image_path TEXT,
			post_id TEXT,
			status TEXT NOT NULL DEFAULT 'posted',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_command_history_created_at ON command_history(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_auto_reply_log_created_at ON auto_reply_log(created_at)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateCommand(ctx context.Context, record *domain.CommandRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO command_history (command_text, command_type, status, created_at) VALUES (?, ?, ?, ?)`,
		record.Text, string(record.CommandType), record.Status, time.Now().UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert command: %w", err)
	}

	return res.LastInsertId()
}

func (s *Store) CompleteCommand(ctx context.Context, id int64, status, result string, commandType domain.Intent) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE command_history SET status = ?, result = ?, command_type = ?, completed_at = ? WHERE id = ?`,
		status, result, string(commandType), time.Now().UTC().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to complete command: %w", err)
	}

	return nil
}

func (s *Store) AppendReply(ctx context.Context, record *domain.ReplyRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auto_reply_log (platform, sender, original_message, reply_message, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.Platform, record.Sender, record.Original, record.Reply, record.Status, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert auto-reply: %w", err)
	}

	return nil
}

func (s *Store) RecordPost(ctx context.Context, record *domain.PostRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO social_media_post (platform, content, image_path, post_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.Platform, record.Content, record.ImagePath, record.PostID, record.Status, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

func (s *Store) CountsSince(ctx context.Context, since time.Time) (domain.ActivityCounts, error) {
	var counts domain.ActivityCounts
	cutoff := since.UTC().Unix()

	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM command_history WHERE created_at >= ?`, &counts.Commands},
		{`SELECT COUNT(*) FROM auto_reply_log WHERE created_at >= ?`, &counts.Replies},
		{`SELECT COUNT(*) FROM social_media_post WHERE created_at >= ?`, &counts.Posts},
	}

	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, cutoff).Scan(q.dest); err != nil {
			return domain.ActivityCounts{}, fmt.Errorf("failed to count activity: %w", err)
		}
	}

	return counts, nil
}

func (s *Store) RecentReplies(ctx context.Context, limit int) ([]domain.ReplyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, sender, original_message, reply_message, status, created_at
		 FROM auto_reply_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query auto-replies: %w", err)
	}
	defer rows.Close()

	var records []domain.ReplyRecord
	for rows.Next() {
		var record domain.ReplyRecord
		var createdAt int64

		if err := rows.Scan(&record.Platform, &record.Sender, &record.Original,
			&record.Reply, &record.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan auto-reply: %w", err)
		}

		record.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, record)
	}

	return records, rows.Err()
}
