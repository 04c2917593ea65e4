// Package cli implements matchctl, an offline runner for the scoring and
// workflow rules against YAML fixtures.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go-jobboard-backend/internal/scoring"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "matchctl"

type runner struct {
	v *viper.Viper
}

// NewRootCmd builds the matchctl command tree. Flags can also be set via MATCHCTL_* variables.
func NewRootCmd() *cobra.Command {
	r := &runner{v: viper.New()}
	r.v.SetEnvPrefix(app)
	r.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           app,
		Short:         "matchctl scores candidate profiles against jobs offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "print results as JSON")
	root.PersistentFlags().String("at", "", "evaluate at this RFC 3339 time instead of now")
	// subcommands share flag names, so only the running command's flags are bound
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return r.v.BindPFlags(cmd.Flags())
	}

	root.AddCommand(
		r.completenessCmd(),
		r.matchCmd(),
		r.recommendCmd(),
		r.transitionsCmd(),
	)
	return root
}

func (r *runner) completenessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completeness",
		Short: "Print the completeness percentage of a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := loadProfile(r.v.GetString("profile"))
			if err != nil {
				return err
			}
			score := scoring.ProfileCompleteness(profile)
			complete := scoring.IsProfileComplete(profile, r.v.GetInt("complete-threshold"))
			return r.print(cmd.OutOrStdout(), map[string]any{"completeness": score, "complete": complete},
				"completeness: %d%%\ncomplete: %t\n", score, complete)
		},
	}
	cmd.Flags().StringP("profile", "p", "", "profile YAML file")
	cmd.Flags().Int("complete-threshold", scoring.DefaultCompleteThreshold, "completeness needed to apply")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func (r *runner) matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Print the match score of a profile against one job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := loadProfile(r.v.GetString("profile"))
			if err != nil {
				return err
			}
			job, err := loadJob(r.v.GetString("job"))
			if err != nil {
				return err
			}
			score := scoring.JobMatch(profile, job)
			return r.print(cmd.OutOrStdout(), map[string]any{"match_score": score},
				"match score: %d\n", score)
		},
	}
	cmd.Flags().StringP("profile", "p", "", "profile YAML file")
	cmd.Flags().StringP("job", "j", "", "job YAML file")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func (r *runner) recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank open jobs for a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := r.now()
			if err != nil {
				return err
			}
			profile, err := loadProfile(r.v.GetString("profile"))
			if err != nil {
				return err
			}
			jobs, err := loadJobs(r.v.GetString("jobs"))
			if err != nil {
				return err
			}
			results := scoring.RecommendJobs(profile, jobs, scoring.RecommendOptions{
				Threshold: r.v.GetInt("threshold"),
				Limit:     r.v.GetInt("limit"),
				Now:       now,
			})

			if r.v.GetBool("json") {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "no matching jobs")
				return nil
			}
			for i, res := range results {
				fmt.Fprintf(out, "%d. [%d] %s (%s)\n", i+1, res.MatchScore, res.Job.Title, res.Job.Location)
			}
			return nil
		},
	}
	cmd.Flags().StringP("profile", "p", "", "profile YAML file")
	cmd.Flags().StringP("jobs", "j", "", "YAML file with a list of jobs")
	cmd.Flags().Int("threshold", scoring.DefaultMatchCutoff, "drop scores at or below this value")
	cmd.Flags().Int("limit", 6, "maximum number of jobs, 0 for all")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("jobs")
	return cmd
}

func (r *runner) now() (time.Time, error) {
	at := r.v.GetString("at")
	if at == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value %q: %w", at, err)
	}
	return t, nil
}

// print writes v as JSON when --json is set, otherwise the formatted text
func (r *runner) print(w io.Writer, v any, format string, args ...any) error {
	if r.v.GetBool("json") {
		return json.NewEncoder(w).Encode(v)
	}
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
