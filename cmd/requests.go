package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Deepakpottavatri06/CourseGen/internal/config"
	"github.com/Deepakpottavatri06/CourseGen/internal/store"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect the log of backend requests",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent backend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		op, _ := cmd.Flags().GetString("op")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryRequestEvents(ctxOf(cmd), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		printRequests(cmd.OutOrStdout(), filterRequests(events, op, failed))
		return nil
	},
}

var requestsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one backend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetRequestEvent(ctxOf(cmd), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "ID:         %d\n", e.ID)
		fmt.Fprintf(w, "Sequence:   %d\n", e.Sequence)
		fmt.Fprintf(w, "Time:       %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Request ID: %s\n", e.RequestID)
		fmt.Fprintf(w, "Operation:  %s\n", e.Operation)
		fmt.Fprintf(w, "Request:    %s %s\n", e.Method, e.Path)
		fmt.Fprintf(w, "Status:     %d\n", e.Status)
		fmt.Fprintf(w, "Latency:    %dms\n", e.LatencyMs)
		fmt.Fprintf(w, "Success:    %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(w, "Error:      %s\n", e.ErrorMessage)
		}
		return nil
	},
}

func init() {
	requestsListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	requestsListCmd.Flags().String("op", "", "Only show this operation (e.g. get_course)")
	requestsListCmd.Flags().Bool("failed", false, "Only show failed requests")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsViewCmd)
}

// openStore opens only the database; the request log needs no backend.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func filterRequests(events []store.RequestEvent, op string, failedOnly bool) []store.RequestEvent {
	out := events[:0:0]
	for _, e := range events {
		if op != "" && e.Operation != op {
			continue
		}
		if failedOnly && e.Success {
			continue
		}
		out = append(out, e)
	}
	return out
}

func printRequests(w io.Writer, events []store.RequestEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No requests found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-18s  %-6s  %-40s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Operation", "Method", "Path", "Status", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		path := e.Path
		if len(path) > 40 {
			path = path[:39] + "…"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-18s  %-6s  %-40s  %-6d  %-7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Operation,
			e.Method,
			path,
			e.Status,
			e.LatencyMs,
			ok,
		)
	}
}
