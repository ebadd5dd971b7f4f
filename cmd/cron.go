package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"storefront.GO/cron"
	_ "storefront.GO/cron/jobs"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := cron.Jobs()[name]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", name)
			j.Run(args...)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Starting cron scheduler...")
		c := cron.StartCron()
		fmt.Fprintln(cmd.OutOrStdout(), "Cron scheduler started. Press Ctrl+C to exit.")

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
