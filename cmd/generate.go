package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/course"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Request a new course",
	Example: `  coursegen generate --topic "Rust Basics" --subtopic Ownership --subtopic Borrowing
  coursegen generate --topic Kubernetes --subtopic Pods,Services --difficulty advanced`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := generateRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireLogin(); err != nil {
			return err
		}

		res, err := e.api.GenerateCourse(ctxOf(cmd), req)
		if err != nil {
			e.expire(ctxOf(cmd), err)
			return fmt.Errorf("generate course: %s", api.Message(err, err.Error()))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Course generation started. It can take a few minutes to be ready.")
		if res.ID != "" {
			fmt.Fprintf(out, "Course ID: %s\n", res.ID)
		}
		return nil
	},
}

func init() {
	addGenerateFlags(generateCmd.Flags())
}

func addGenerateFlags(fs *pflag.FlagSet) {
	fs.String("topic", "", "Course topic")
	fs.StringSlice("subtopic", nil, "Subtopic (repeat or comma-separate, 1 to 8)")
	fs.String("difficulty", string(course.Beginner), "beginner, intermediate or advanced")
	fs.String("language", course.DefaultLanguage, "Content language")
}

// generateRequestFromFlags builds and validates the request before any
// network or database work.
func generateRequestFromFlags(cmd *cobra.Command) (course.GenerateRequest, error) {
	topic, _ := cmd.Flags().GetString("topic")
	subs, _ := cmd.Flags().GetStringSlice("subtopic")
	diff, _ := cmd.Flags().GetString("difficulty")
	lang, _ := cmd.Flags().GetString("language")

	d, err := course.ParseDifficulty(diff)
	if err != nil {
		return course.GenerateRequest{}, err
	}

	var list []string
	for _, s := range subs {
		if list, err = course.AddSubtopic(list, s); err != nil {
			return course.GenerateRequest{}, fmt.Errorf("subtopic %q: %w", s, err)
		}
	}

	req := course.NewGenerateRequest(topic, list)
	req.Difficulty = d
	req.Language = lang
	req.Normalize()
	if err := req.Validate(); err != nil {
		return course.GenerateRequest{}, err
	}
	return req, nil
}
