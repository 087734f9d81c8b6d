package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// LLMRequestEventData captures the data for a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request.
type LLMRequestRecord struct {
	ID        string
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo records LLM usage.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns the newest requests first. A limit of 0
	// returns all of them.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestRecord, error)
}

type sqlEventRepo struct {
	db      *sql.DB
	dialect string
}

func (r *sqlEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := entsql.Dialect(r.dialect).Insert("llm_requests").
		Columns("id", "provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "created_at").
		Values(uuid.NewString(), data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, boolInt(data.Success), data.ErrorMessage, millis(time.Now())).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *sqlEventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestRecord, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select("id", "provider", "model", "purpose", "input_tokens", "output_tokens",
		"latency_ms", "success", "error_message", "created_at").
		From(b.Table("llm_requests")).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		var (
			rec       LLMRequestRecord
			success   int
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Provider, &rec.Model, &rec.Purpose, &rec.InputTokens,
			&rec.OutputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		rec.Success = success != 0
		rec.Timestamp = fromMillis(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
