package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/Deepakpottavatri06/CourseGen/ent/migrate"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var requestEventColumns = []string{
	"id", "sequence", "timestamp", "request_id", "operation", "method", "path",
	"status", "latency_ms", "success", "error_message",
}

func (r *eventRepo) AppendRequestEvent(ctx context.Context, data RequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(migrate.RequestEventsTable).
		Columns(requestEventColumns[1:]...).
		Values(seqNum, time.Now().UTC(), data.RequestID, data.Operation, data.Method,
			data.Path, data.Status, data.LatencyMs, data.Success, data.ErrorMessage).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRequestEvents(ctx context.Context, opts QueryOpts) ([]RequestEvent, error) {
	sel := builder().Select(requestEventColumns...).
		From(entsql.Table(migrate.RequestEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.query(ctx, sel)
}

func (r *eventRepo) GetRequestEvent(ctx context.Context, id int) (*RequestEvent, error) {
	sel := builder().Select(requestEventColumns...).
		From(entsql.Table(migrate.RequestEventsTable)).
		Where(entsql.EQ("id", id))
	events, err := r.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector) ([]RequestEvent, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var events []RequestEvent
	for rows.Next() {
		var e RequestEvent
		err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.RequestID, &e.Operation,
			&e.Method, &e.Path, &e.Status, &e.LatencyMs, &e.Success, &e.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request events: %w", err)
	}
	return events, nil
}
