package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const completionsTable = "lesson_completions"

// Completion records that a lesson was marked complete.
type Completion struct {
	ID          string
	Sequence    int64
	LessonID    int
	CompletedAt time.Time
}

// ProgressRepo tracks which lessons the learner has completed. Answers
// themselves are never stored.
type ProgressRepo interface {
	// MarkComplete records the lesson as complete. It returns false when
	// the lesson was already complete.
	MarkComplete(ctx context.Context, lessonID int) (bool, error)

	// Completed returns completed lesson IDs in completion order.
	Completed(ctx context.Context) ([]int, error)

	// Completions returns completion records in completion order.
	Completions(ctx context.Context) ([]Completion, error)

	// Reset forgets all completions.
	Reset(ctx context.Context) error
}

type progressRepo struct {
	drv    *entsql.Driver
	seq    *sequenceCounter
	logger *zap.Logger
	now    func() time.Time
}

func (r *progressRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *progressRepo) MarkComplete(ctx context.Context, lessonID int) (bool, error) {
	done, err := r.isComplete(ctx, lessonID)
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}
	if done {
		return false, nil
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(completionsTable).
		Columns("id", "sequence", "lesson_id", "completed_at").
		Values(uuid.NewString(), seqNum, lessonID, r.clock().UTC().Format(time.RFC3339)).
		OnConflict(entsql.ConflictColumns("lesson_id"), entsql.DoNothing()).
		Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return false, fmt.Errorf("save completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save completion: %w", err)
	}

	r.logger.Debug("lesson completed",
		zap.Int("lesson_id", lessonID),
		zap.Int64("sequence", seqNum),
		zap.Bool("new", n > 0))
	return n > 0, nil
}

func (r *progressRepo) isComplete(ctx context.Context, lessonID int) (bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select().
		Count().
		From(entsql.Table(completionsTable)).
		Where(entsql.EQ("lesson_id", lessonID)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return false, err
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *progressRepo) Completed(ctx context.Context) ([]int, error) {
	cs, err := r.Completions(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(cs))
	for i, c := range cs {
		ids[i] = c.LessonID
	}
	return ids, nil
}

func (r *progressRepo) Completions(ctx context.Context) ([]Completion, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "lesson_id", "completed_at").
		From(entsql.Table(completionsTable)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var completedAt string
		if err := rows.Scan(&c.ID, &c.Sequence, &c.LessonID, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		t, err := time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at %q: %w", completedAt, err)
		}
		c.CompletedAt = t
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return out, nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(completionsTable).
		Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	n, _ := res.RowsAffected()
	r.logger.Debug("progress reset", zap.Int64("removed", n))
	return nil
}
