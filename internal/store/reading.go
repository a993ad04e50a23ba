package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type readingRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *readingRepo) Save(ctx context.Context, rec *ReadingRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	rec.Sequence = seq
	rec.CreatedAt = time.UnixMilli(time.Now().UnixMilli())

	_, err = r.db.ExecContext(ctx, `INSERT INTO readings
		(id, sequence, created_at, hand, language, media_type, image_bytes,
		 heart_line, head_line, life_line, fate_line, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Sequence, rec.CreatedAt.UnixMilli(), rec.Hand, rec.Language,
		rec.MediaType, rec.ImageBytes, rec.HeartLine, rec.HeadLine, rec.LifeLine,
		rec.FateLine, rec.Summary,
	)
	if err != nil {
		return fmt.Errorf("save reading: %w", err)
	}
	return nil
}

func (r *readingRepo) List(ctx context.Context, opts QueryOpts) ([]ReadingRecord, error) {
	where, args := opts.clauses("created_at")
	q := `SELECT id, sequence, created_at, hand, language, media_type, image_bytes,
		heart_line, head_line, life_line, fate_line, summary
		FROM readings` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var out []ReadingRecord
	for rows.Next() {
		var (
			rec ReadingRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Hand, &rec.Language,
			&rec.MediaType, &rec.ImageBytes, &rec.HeartLine, &rec.HeadLine,
			&rec.LifeLine, &rec.FateLine, &rec.Summary); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *readingRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM readings`)
	if err != nil {
		return 0, fmt.Errorf("delete readings: %w", err)
	}
	return res.RowsAffected()
}
