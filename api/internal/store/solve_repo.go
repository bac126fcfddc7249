package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"math-animator/api/internal/solver"
)

var ErrNotFound = sql.ErrNoRows

// SolveRepo caches solver results keyed by (input_hash, engine, model) so
// the bot does not re-run the oracle for an input it has already solved.
type SolveRepo struct{ DB *sql.DB }

func NewSolveRepo(db *sql.DB) *SolveRepo { return &SolveRepo{DB: db} }

// Find returns the freshest cached result. If maxAge > 0 and the row is
// older, reports ErrNotFound so the caller re-solves.
func (r *SolveRepo) Find(ctx context.Context, inputHash, engine, model string, maxAge time.Duration) (solver.Result, error) {
	const q = `
select result_json, created_at
from solve_cache
where input_hash = $1 and engine = $2 and model = $3
order by created_at desc
limit 1`
	var (
		js []byte
		ts time.Time
	)
	if err := r.DB.QueryRowContext(ctx, q, inputHash, engine, model).Scan(&js, &ts); err != nil {
		return solver.Result{}, err
	}
	if maxAge > 0 && time.Since(ts) > maxAge {
		return solver.Result{}, ErrNotFound
	}
	var res solver.Result
	if err := json.Unmarshal(js, &res); err != nil {
		// broken cache row reads as a miss
		return solver.Result{}, ErrNotFound
	}
	if res.Sequence == nil && res.Failure == nil {
		return solver.Result{}, ErrNotFound
	}
	return res, nil
}

// Upsert stores a result for (input_hash, engine, model), replacing any
// previous row for the same key.
func (r *SolveRepo) Upsert(ctx context.Context, inputHash, engine, model, input string, res solver.Result) error {
	js, err := json.Marshal(res)
	if err != nil {
		return err
	}
	const q = `
insert into solve_cache (input_hash, engine, model, input, result_json)
values ($1,$2,$3,$4,$5)
on conflict (input_hash, engine, model) do update
set input = excluded.input,
    result_json = excluded.result_json,
    created_at = now()`
	_, err = r.DB.ExecContext(ctx, q, inputHash, engine, model, input, js)
	return err
}

// PurgeOlderThan trims old cache rows so the table does not grow without
// bound.
func (r *SolveRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from solve_cache where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
