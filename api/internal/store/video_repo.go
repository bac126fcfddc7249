package store

import (
	"context"
	"database/sql"
	"time"
)

// VideoRepo remembers the Telegram file ID of an already-uploaded animation
// per (input_hash, quality). Re-sending a file ID is instant; re-rendering
// takes tens of seconds.
type VideoRepo struct{ DB *sql.DB }

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{DB: db} }

func (r *VideoRepo) Find(ctx context.Context, inputHash, quality string, maxAge time.Duration) (string, error) {
	const q = `select file_id, created_at from video_cache where input_hash=$1 and quality=$2`
	var (
		fileID string
		ts     time.Time
	)
	if err := r.DB.QueryRowContext(ctx, q, inputHash, quality).Scan(&fileID, &ts); err != nil {
		return "", err
	}
	if maxAge > 0 && time.Since(ts) > maxAge {
		return "", ErrNotFound
	}
	if fileID == "" {
		return "", ErrNotFound
	}
	return fileID, nil
}

func (r *VideoRepo) Upsert(ctx context.Context, inputHash, quality, fileID string) error {
	const q = `
insert into video_cache (input_hash, quality, file_id)
values ($1,$2,$3)
on conflict (input_hash, quality)
do update set file_id = excluded.file_id, created_at = now()`
	_, err := r.DB.ExecContext(ctx, q, inputHash, quality, fileID)
	return err
}
