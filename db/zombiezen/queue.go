package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/albashop/alba/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func newJobFromStmt(stmt *sqlite.Stmt) (*db.Job, error) {
	createdAt, err := db.TimeParse(stmt.GetText("created_at"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created_at time: %w", err)
	}
	updatedAt, err := db.TimeParse(stmt.GetText("updated_at"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated_at time: %w", err)
	}

	// The remaining time columns can be empty strings in the db.
	var scheduledFor, lockedAt, completedAt time.Time
	if s := stmt.GetText("scheduled_for"); s != "" {
		if scheduledFor, err = db.TimeParse(s); err != nil {
			return nil, fmt.Errorf("error parsing scheduled_for time: %w", err)
		}
	}
	if s := stmt.GetText("locked_at"); s != "" {
		if lockedAt, err = db.TimeParse(s); err != nil {
			return nil, fmt.Errorf("error parsing locked_at time: %w", err)
		}
	}
	if s := stmt.GetText("completed_at"); s != "" {
		if completedAt, err = db.TimeParse(s); err != nil {
			return nil, fmt.Errorf("error parsing completed_at time: %w", err)
		}
	}

	return &db.Job{
		ID:           stmt.GetInt64("id"),
		JobType:      stmt.GetText("job_type"),
		Payload:      json.RawMessage(stmt.GetText("payload")),
		PayloadExtra: json.RawMessage(stmt.GetText("payload_extra")),
		Status:       stmt.GetText("status"),
		Attempts:     int(stmt.GetInt64("attempts")),
		MaxAttempts:  int(stmt.GetInt64("max_attempts")),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		ScheduledFor: scheduledFor,
		LockedAt:     lockedAt,
		CompletedAt:  completedAt,
		LastError:    stmt.GetText("last_error"),
	}, nil
}

// InsertJob adds a pending job. A second insert of the same (type, payload)
// while the first is still pending violates the dedup index and returns
// db.ErrConstraintUnique.
func (d *Db) InsertJob(job db.Job) error {
	if job.JobType == "" || len(job.Payload) == 0 {
		return fmt.Errorf("job is missing type or payload")
	}
	if job.MaxAttempts == 0 {
		job.MaxAttempts = 3
	}

	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO job_queue (job_type, payload, payload_extra, attempts, max_attempts)
		VALUES (?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				job.JobType,
				string(job.Payload),
				string(job.PayloadExtra),
				job.Attempts,
				job.MaxAttempts,
			},
		})
	if err != nil {
		if mapped := mapConstraintErr(err); mapped == db.ErrConstraintUnique {
			return mapped
		}
		return fmt.Errorf("queue insert failed: %w", err)
	}
	return nil
}

// Claim atomically marks up to limit pending jobs as processing and
// returns them. Single-statement UPDATE ... RETURNING keeps two concurrent
// schedulers from claiming the same job.
func (d *Db) Claim(limit int) ([]*db.Job, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var jobs []*db.Job
	err = sqlitex.Execute(conn,
		`UPDATE job_queue
		SET status = 'processing',
			attempts = attempts + 1,
			locked_at = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id IN (
			SELECT id FROM job_queue
			WHERE status = 'pending' AND attempts < max_attempts
			ORDER BY id ASC
			LIMIT ?
		)
		RETURNING id, job_type, payload, payload_extra, status, attempts, max_attempts,
			created_at, updated_at, scheduled_for, locked_at, completed_at, last_error`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				job, err := newJobFromStmt(stmt)
				if err != nil {
					return err
				}
				jobs = append(jobs, job)
				return nil
			},
			Args: []any{limit},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to claim jobs: %w", err)
	}
	return jobs, nil
}

// MarkCompleted finalizes a processed job.
func (d *Db) MarkCompleted(jobID int64) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE job_queue
		SET status = 'completed',
			completed_at = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{jobID},
		})
	if err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}
	return nil
}

// MarkFailed records a failed attempt. Jobs that still have attempts left
// go back to pending; exhausted jobs stay failed.
func (d *Db) MarkFailed(jobID int64, errMsg string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE job_queue
		SET status = IIF(attempts < max_attempts, 'pending', 'failed'),
			last_error = ?,
			updated_at = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{errMsg, jobID},
		})
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}
	return nil
}
