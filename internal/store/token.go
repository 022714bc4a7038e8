package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/Deepakpottavatri06/CourseGen/ent/migrate"
)

// tokenRepo implements TokenRepo on the settings table.
type tokenRepo struct {
	drv *entsql.Driver
}

func (r *tokenRepo) SaveToken(ctx context.Context, token string) error {
	query, args := builder().Insert(migrate.SettingsTable).
		Columns("key", "value", "updated_at").
		Values(SessionTokenKey, token, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (r *tokenRepo) LoadToken(ctx context.Context) (string, error) {
	query, args := builder().Select("value").
		From(entsql.Table(migrate.SettingsTable)).
		Where(entsql.EQ("key", SessionTokenKey)).
		Limit(1).
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	defer rows.Close()

	var token string
	if rows.Next() {
		if err := rows.Scan(&token); err != nil {
			return "", fmt.Errorf("load token: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (r *tokenRepo) ClearToken(ctx context.Context) error {
	query, args := builder().Delete(migrate.SettingsTable).
		Where(entsql.EQ("key", SessionTokenKey)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
