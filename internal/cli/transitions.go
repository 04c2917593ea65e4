package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/workflow"

	"github.com/spf13/cobra"
)

func (r *runner) transitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions",
		Short: "Print the recruiter status transition table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := make(map[domain.ApplicationStatus][]domain.ApplicationStatus, len(domain.ApplicationStatuses))
			for _, s := range domain.ApplicationStatuses {
				table[s] = workflow.AllowedTransitions(s)
			}
			if r.v.GetBool("json") {
				return r.print(cmd.OutOrStdout(), table, "")
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FROM\tTERMINAL\tALLOWED")
			for _, s := range domain.ApplicationStatuses {
				names := make([]string, 0, len(table[s]))
				for _, to := range table[s] {
					names = append(names, string(to))
				}
				allowed := strings.Join(names, ", ")
				if allowed == "" {
					allowed = "-"
				}
				fmt.Fprintf(tw, "%s\t%t\t%s\n", s, workflow.IsTerminal(s), allowed)
			}
			return tw.Flush()
		},
	}
}
