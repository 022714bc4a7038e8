package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/auth"
	"github.com/Deepakpottavatri06/CourseGen/internal/config"
	"github.com/Deepakpottavatri06/CourseGen/internal/logger"
	"github.com/Deepakpottavatri06/CourseGen/internal/store"
)

// env is everything a command needs to talk to the backend.
type env struct {
	cfg     config.Config
	store   *store.Store
	log     *logger.Logger
	session *auth.Session
	api     api.API
}

// openEnv opens the store, restores the session and builds the API client
// for a one-shot command. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	return openEnvFor(cmd, false)
}

// openEnvFor is openEnv with the log destination chosen for the TUI when
// tui is set.
func openEnvFor(cmd *cobra.Command, tui bool) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	log := openLog(cfg, tui)

	sess, err := auth.NewSession(ctxOf(cmd), st.TokenRepo())
	if err != nil {
		st.Close()
		return nil, err
	}

	client := api.New(cfg.APIURL, sess, api.WithTimeout(cfg.Timeout))
	log.Debug("environment ready", "api_url", cfg.APIURL, "db", dbPath)

	return &env{
		cfg:     cfg,
		store:   st,
		log:     log,
		session: sess,
		api:     api.WithEventLog(client, st.EventRepo(), log),
	}, nil
}

func (e *env) Close() {
	e.log.Sync()
	e.store.Close()
}

// requireLogin fails with a hint when there is no usable token.
func (e *env) requireLogin() error {
	if _, err := e.session.Require(); err != nil {
		return fmt.Errorf("%w: run `coursegen login` first", err)
	}
	return nil
}

// openLog picks the log destination. The TUI owns the terminal, so it logs
// to the configured file. One-shot commands print results to stdout and
// log warnings and errors to stderr.
func openLog(cfg config.Config, tui bool) *logger.Logger {
	if !tui {
		log, err := logger.New(logger.Options{Mode: cfg.LogMode, Level: "warn"})
		if err != nil {
			return logger.Nop()
		}
		return log
	}

	path := cfg.LogFile
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return logger.Nop()
		}
		path = p
	}
	log, err := logger.New(logger.Options{Mode: cfg.LogMode, Path: path, Level: cfg.LogLevel})
	if err != nil {
		return logger.Nop()
	}
	return log
}

// expire logs out when err means the server rejected the token.
func (e *env) expire(ctx context.Context, err error) {
	if _, clearErr := e.session.Expire(ctx, err); clearErr != nil {
		e.log.Error("failed to clear rejected token", "error", clearErr)
	}
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
