package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/courseview"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List and read generated courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireLogin(); err != nil {
			return err
		}

		courses, err := e.api.ListCourses(ctxOf(cmd))
		if err != nil {
			e.expire(ctxOf(cmd), err)
			return fmt.Errorf("list courses: %w", err)
		}
		printCourses(cmd.OutOrStdout(), courses)
		return nil
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a course's sections, or one section with --section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireLogin(); err != nil {
			return err
		}

		m, err := loadCourse(cmd, e, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		n, _ := cmd.Flags().GetInt("section")
		if n == 0 {
			printOutline(out, m)
			return nil
		}
		if n < 1 || n > m.Len() {
			return fmt.Errorf("section %d out of range (1-%d)", n, m.Len())
		}
		m.GoToPage(n - 1)
		printSection(out, m.Current())
		return nil
	},
}

var coursesReadCmd = &cobra.Command{
	Use:   "read <id> <subtopic>",
	Short: "Mark a subtopic as read",
	Long:  "Mark a subtopic as read. The subtopic may be given by title, section id or section number.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireLogin(); err != nil {
			return err
		}

		m, err := loadCourse(cmd, e, args[0])
		if err != nil {
			return err
		}

		idx, ok := findSection(m.Sections(), args[1])
		if !ok {
			return fmt.Errorf("no section matches %q", args[1])
		}
		m.GoToPage(idx)
		if m.Current().Kind != courseview.KindSubtopic {
			return fmt.Errorf("%q is not a subtopic", m.Current().Title)
		}

		if err := m.MarkCurrentAsRead(ctxOf(cmd)); err != nil {
			e.expire(ctxOf(cmd), err)
			return fmt.Errorf("mark read: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as read.\n", m.Current().Title)
		return nil
	},
}

func init() {
	coursesShowCmd.Flags().Int("section", 0, "Print the content of section N (1-based)")

	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesShowCmd)
	coursesCmd.AddCommand(coursesReadCmd)
}

// loadCourse fetches a course and fails unless it is ready to read.
func loadCourse(cmd *cobra.Command, e *env, id string) (*courseview.Model, error) {
	m := courseview.New(e.api, id, e.log)
	m.Load(ctxOf(cmd))

	switch m.Mode() {
	case courseview.ModeGenerating:
		return nil, fmt.Errorf("course %s is still being generated; try again in a few minutes", id)
	case courseview.ModeError:
		if m.ErrorKind() == courseview.ErrorUnauthorized {
			_ = e.session.Logout(ctxOf(cmd))
			return nil, errors.New("session expired: run `coursegen login` again")
		}
		return nil, errors.New(m.ErrorMessage())
	}
	return m, nil
}

// findSection matches key against a 1-based number, a section id, or a
// title (case-insensitive).
func findSection(sections []courseview.Section, key string) (int, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(sections) {
			return n - 1, true
		}
		return 0, false
	}
	for i, s := range sections {
		if s.ID == key || strings.EqualFold(s.Title, key) {
			return i, true
		}
	}
	return 0, false
}

func printCourses(w io.Writer, courses []course.Course) {
	if len(courses) == 0 {
		fmt.Fprintln(w, "No courses yet. Run `coursegen generate` to create one.")
		return
	}

	fmt.Fprintf(w, "%-24s  %-32s  %-12s  %5s  %-10s  %s\n",
		"ID", "Topic", "Difficulty", "Mins", "Status", "Subtopics")
	fmt.Fprintln(w, strings.Repeat("─", 110))
	for _, c := range courses {
		status := "ready"
		if !c.ContentLoaded {
			status = "generating"
		}
		topic := c.Topic
		if len(topic) > 32 {
			topic = topic[:31] + "…"
		}
		fmt.Fprintf(w, "%-24s  %-32s  %-12s  %5d  %-10s  %s\n",
			c.ID, topic, c.Difficulty.Label(), c.EstimatedReadingTime, status,
			strings.Join(c.SubTopics, ", "))
	}
}

func printOutline(w io.Writer, m *courseview.Model) {
	c := m.Course()
	fmt.Fprintf(w, "%s\n", c.Topic)
	fmt.Fprintf(w, "%s · %d min read\n\n", c.Difficulty.Label(), c.EstimatedReadingTime)

	for i, s := range m.Sections() {
		mark := " "
		if s.Read {
			mark = "✓"
		}
		fmt.Fprintf(w, "%2d. %s %-40s  %s\n", i+1, mark, s.Title, s.ID)
	}
	if dups := courseview.DuplicateSlugs(m.Sections()); len(dups) > 0 {
		fmt.Fprintf(w, "\nwarning: subtopics share a section id: %s\n", strings.Join(dups, ", "))
	}
}

func printSection(w io.Writer, s *courseview.Section) {
	fmt.Fprintln(w, s.Title)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	switch {
	case s.Intro != nil:
		fmt.Fprintln(w, s.Intro.Introduction)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Overview")
		fmt.Fprintln(w, s.Intro.Overview)
	case s.Kind == courseview.KindMain:
		for _, item := range s.Items {
			fmt.Fprintf(w, "  • %s\n", item)
		}
	default:
		fmt.Fprintln(w, s.Body)
		if len(s.Sources) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Sources")
			for _, src := range s.Sources {
				fmt.Fprintf(w, "  %s\n", src)
			}
		}
	}
}
