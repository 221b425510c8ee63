package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one notification tick now",
	Long:  `Deliver every subscription that is due at the current time, exactly as a scheduled tick would.`,
	RunE:  runTick,
}

var sendCmd = &cobra.Command{
	Use:   "send <channel-id>",
	Short: "Deliver a channel's notification immediately",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(sendCmd)
}

func runTick(cmd *cobra.Command, args []string) error {
	report, err := application.GetNotificationUseCase().RunTick(cmd.Context())
	if err != nil {
		return fmt.Errorf("run tick: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "tick %s at %s: due=%d fired=%d skipped=%d failed=%d conflict=%d (%s)\n",
		report.TickID, report.At.Format("2006-01-02 15:04:05 MST"),
		report.Due, report.Fired, report.Skipped, report.Failed, report.Conflict, report.Duration)
	for _, outcome := range report.Outcomes {
		line := fmt.Sprintf("  channel %d: %s", outcome.ChannelID, outcome.Result)
		if outcome.Err != nil {
			line += ": " + outcome.Err.Error()
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	channelID, err := parseChannelID(args[0])
	if err != nil {
		return err
	}
	if err := application.GetNotificationUseCase().SendNow(cmd.Context(), channelID); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "notification sent to channel %d\n", channelID)
	return nil
}
