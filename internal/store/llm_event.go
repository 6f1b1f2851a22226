package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx, r.drv)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert("llm_request_events").
		Columns(llmEventColumns[1:]...).
		Values(seqNum, toMillis(r.now()), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, boolInt(data.Success),
			data.ErrorMessage, data.RequestBody, data.ResponseBody).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := sqlite().Select(llmEventColumns...).From(entsql.Table("llm_request_events"))
	query, args := applyOpts(sel, QueryOpts{
		Limit:  opts.Limit,
		After:  opts.After,
		Before: opts.Before,
		From:   opts.From,
		To:     opts.To,
	}).Query()
	return r.queryLLMEvents(ctx, query, args)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	query, args := sqlite().Select(llmEventColumns...).
		From(entsql.Table("llm_request_events")).
		Where(entsql.EQ("id", id)).
		Query()
	events, err := r.queryLLMEvents(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) queryLLMEvents(ctx context.Context, query string, args []any) ([]LLMEvent, error) {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var (
			e  LLMEvent
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
			&e.RequestBody, &e.ResponseBody); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error) {
	query, args := sqlite().
		Select("purpose", entsql.Count("*"), entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"), entsql.Avg("latency_ms")).
		From(entsql.Table("llm_request_events")).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStat
	for rows.Next() {
		var (
			s   LLMUsageStat
			avg float64
		)
		if err := rows.Scan(&s.Purpose, &s.Calls, &s.InputTokens, &s.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		s.AvgLatencyMs = int(avg)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	query, args := sqlite().
		Select("model", entsql.Count("*"), entsql.Sum("input_tokens"), entsql.Sum("output_tokens")).
		From(entsql.Table("llm_request_events")).
		Where(entsql.EQ("success", 1)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query model usage: %w", err)
	}
	defer rows.Close()

	var out []LLMModelUsage
	for rows.Next() {
		var mu LLMModelUsage
		if err := rows.Scan(&mu.Model, &mu.Calls, &mu.InputTokens, &mu.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, mu)
	}
	return out, rows.Err()
}
