package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lessonloop/internal/learner"
	"github.com/abhisek/lessonloop/internal/ledger"
	"github.com/abhisek/lessonloop/internal/missions"
	"github.com/abhisek/lessonloop/internal/progression"
	"github.com/abhisek/lessonloop/internal/review"
	"github.com/abhisek/lessonloop/internal/unlock"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var learnerColumns = []string{
	"id", "username", "credits", "streak", "total_answered", "total_correct",
	"level", "start_date", "last_active_date", "created_at",
}

type sqlStateRepo struct {
	db      *sql.DB
	dialect string
}

func (r *sqlStateRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.dialect)
}

func (r *sqlStateRepo) Create(ctx context.Context, l learner.Learner) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.findByUsername(ctx, tx, l.Username); err == nil {
			return fmt.Errorf("%w: username %q", ErrConflict, l.Username)
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		b := r.builder()
		query, args := b.Insert("learners").
			Columns(learnerColumns...).
			Values(l.ID, l.Username, l.Credits, l.Streak, l.TotalAnswered, l.TotalCorrect,
				string(l.Level), nullMillis(l.StartDate), l.LastActiveDate, millis(l.CreatedAt)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert learner: %w", err)
		}
		return r.saveSession(ctx, tx, NewLearnerState(l))
	})
}

func (r *sqlStateRepo) Load(ctx context.Context, learnerID string) (*LearnerState, error) {
	b := r.builder()
	query, args := b.Select(learnerColumns...).
		From(b.Table("learners")).
		Where(entsql.EQ("id", learnerID)).
		Query()
	l, err := scanLearner(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: learner %s", ErrNotFound, learnerID)
		}
		return nil, fmt.Errorf("load learner: %w", err)
	}

	st := NewLearnerState(l)
	if st.Answers, err = r.loadAnswers(ctx, learnerID); err != nil {
		return nil, err
	}
	if st.Unlocks, err = r.loadUnlocks(ctx, learnerID); err != nil {
		return nil, err
	}
	if err := r.loadSession(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (r *sqlStateRepo) Save(ctx context.Context, st *LearnerState) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		l := st.Learner
		b := r.builder()
		query, args := b.Update("learners").
			Set("username", l.Username).
			Set("credits", l.Credits).
			Set("streak", l.Streak).
			Set("total_answered", l.TotalAnswered).
			Set("total_correct", l.TotalCorrect).
			Set("level", string(l.Level)).
			Set("start_date", nullMillis(l.StartDate)).
			Set("last_active_date", l.LastActiveDate).
			Where(entsql.EQ("id", l.ID)).
			Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update learner: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: learner %s", ErrNotFound, l.ID)
		}

		if st.Answers != nil {
			for seq, rec := range st.Answers.Records() {
				query, args := r.builder().Insert("answer_records").
					Columns("learner_id", "question_id", "lesson_index", "is_correct", "answered_at", "review_count", "seq").
					Values(l.ID, rec.QuestionID, rec.LessonIndex, boolInt(rec.Correct), millis(rec.AnsweredAt), rec.ReviewCount, seq).
					OnConflict(entsql.ConflictColumns("learner_id", "question_id"), entsql.ResolveWithNewValues()).
					Query()
				if _, err := tx.ExecContext(ctx, query, args...); err != nil {
					return fmt.Errorf("upsert answer %s: %w", rec.QuestionID, err)
				}
			}
		}

		for topicID, at := range st.Unlocks {
			query, args := r.builder().Insert("topic_unlocks").
				Columns("learner_id", "topic_id", "unlocks_at").
				Values(l.ID, topicID, millis(at)).
				OnConflict(entsql.ConflictColumns("learner_id", "topic_id"), entsql.ResolveWithNewValues()).
				Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert unlock %s: %w", topicID, err)
			}
		}

		return r.saveSession(ctx, tx, st)
	})
}

func (r *sqlStateRepo) FindByUsername(ctx context.Context, username string) (learner.Learner, error) {
	return r.findByUsername(ctx, r.db, username)
}

func (r *sqlStateRepo) findByUsername(ctx context.Context, q querier, username string) (learner.Learner, error) {
	b := r.builder()
	query, args := b.Select(learnerColumns...).
		From(b.Table("learners")).
		Where(entsql.EQ("username", username)).
		Query()
	l, err := scanLearner(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return learner.Learner{}, fmt.Errorf("%w: username %q", ErrNotFound, username)
		}
		return learner.Learner{}, fmt.Errorf("find learner: %w", err)
	}
	return l, nil
}

func (r *sqlStateRepo) List(ctx context.Context) ([]learner.Learner, error) {
	b := r.builder()
	query, args := b.Select(learnerColumns...).
		From(b.Table("learners")).
		OrderBy("created_at", "id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	defer rows.Close()

	var out []learner.Learner
	for rows.Next() {
		l, err := scanLearner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan learner: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *sqlStateRepo) loadAnswers(ctx context.Context, learnerID string) (*ledger.Ledger, error) {
	b := r.builder()
	query, args := b.Select("question_id", "lesson_index", "is_correct", "answered_at", "review_count").
		From(b.Table("answer_records")).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy("seq").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		var (
			rec        ledger.Record
			correct    int
			answeredAt int64
		)
		if err := rows.Scan(&rec.QuestionID, &rec.LessonIndex, &correct, &answeredAt, &rec.ReviewCount); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Correct = correct != 0
		rec.AnsweredAt = fromMillis(answeredAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	return ledger.FromRecords(records), nil
}

func (r *sqlStateRepo) loadUnlocks(ctx context.Context, learnerID string) (unlock.Timestamps, error) {
	b := r.builder()
	query, args := b.Select("topic_id", "unlocks_at").
		From(b.Table("topic_unlocks")).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load unlocks: %w", err)
	}
	defer rows.Close()

	ts := unlock.Timestamps{}
	for rows.Next() {
		var (
			topicID string
			at      int64
		)
		if err := rows.Scan(&topicID, &at); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		ts[topicID] = fromMillis(at)
	}
	return ts, rows.Err()
}

func (r *sqlStateRepo) loadSession(ctx context.Context, st *LearnerState) error {
	b := r.builder()
	query, args := b.Select("card_cursor", "completed", "review", "missions").
		From(b.Table("learner_sessions")).
		Where(entsql.EQ("learner_id", st.Learner.ID)).
		Query()

	var (
		cursor    int
		completed string
		session   string
		board     string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&cursor, &completed, &session, &board)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(completed), &ids); err != nil {
		return fmt.Errorf("decode completed cards: %w", err)
	}
	st.Progress = progression.Restore(cursor, ids)

	var rs review.Session
	if err := json.Unmarshal([]byte(session), &rs); err != nil {
		return fmt.Errorf("decode review session: %w", err)
	}
	st.Review = rs

	var mb missions.Board
	if err := json.Unmarshal([]byte(board), &mb); err != nil {
		return fmt.Errorf("decode missions: %w", err)
	}
	st.Missions = mb
	return nil
}

func (r *sqlStateRepo) saveSession(ctx context.Context, tx *sql.Tx, st *LearnerState) error {
	completed, err := json.Marshal(st.Progress.Completed())
	if err != nil {
		return fmt.Errorf("encode completed cards: %w", err)
	}
	rs, err := json.Marshal(st.Review)
	if err != nil {
		return fmt.Errorf("encode review session: %w", err)
	}
	board, err := json.Marshal(st.Missions)
	if err != nil {
		return fmt.Errorf("encode missions: %w", err)
	}

	query, args := r.builder().Insert("learner_sessions").
		Columns("learner_id", "card_cursor", "completed", "review", "missions", "updated_at").
		Values(st.Learner.ID, st.Progress.Cursor, string(completed), string(rs), string(board), millis(time.Now())).
		OnConflict(entsql.ConflictColumns("learner_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *sqlStateRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLearner(row rowScanner) (learner.Learner, error) {
	var (
		l         learner.Learner
		level     string
		startDate sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&l.ID, &l.Username, &l.Credits, &l.Streak, &l.TotalAnswered, &l.TotalCorrect,
		&level, &startDate, &l.LastActiveDate, &createdAt)
	if err != nil {
		return learner.Learner{}, err
	}
	l.Level = learner.Level(level)
	if startDate.Valid {
		l.StartDate = fromMillis(startDate.Int64)
	}
	l.CreatedAt = fromMillis(createdAt)
	return l, nil
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func nullMillis(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
