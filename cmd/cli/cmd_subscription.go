package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"weathernotify.app/internal/core/subscription"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <channel-id> <HH:MM>",
	Short: "Register or replace a channel's subscription",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubscribe,
}

var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <channel-id>",
	Short: "Remove a channel's subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnsubscribe,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all subscriptions",
	RunE:  runList,
}

var subscribeFlags struct {
	lat        float64
	lon        float64
	interval   time.Duration
	isForecast bool
}

func init() {
	subscribeCmd.Flags().Float64Var(&subscribeFlags.lat, "lat", 35.6895, "latitude of the reported location")
	subscribeCmd.Flags().Float64Var(&subscribeFlags.lon, "lon", 139.6917, "longitude of the reported location")
	subscribeCmd.Flags().DurationVar(&subscribeFlags.interval, "interval", subscription.DefaultInterval, "minimum time between deliveries")
	subscribeCmd.Flags().BoolVar(&subscribeFlags.isForecast, "forecast", false, "deliver the forecast entry nearest to the delivery time")

	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(unsubscribeCmd)
	rootCmd.AddCommand(listCmd)
}

func parseChannelID(value string) (int64, error) {
	channelID, err := strconv.ParseInt(value, 10, 64)
	if err != nil || channelID <= 0 {
		return 0, fmt.Errorf("channel id must be a positive integer, got %q", value)
	}
	return channelID, nil
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	channelID, err := parseChannelID(args[0])
	if err != nil {
		return err
	}

	sub, err := application.GetSubscriptionUseCase().Register(cmd.Context(), subscription.RegisterParams{
		ChannelID:  channelID,
		TimeOfDay:  args[1],
		Interval:   subscribeFlags.interval,
		Lat:        subscribeFlags.lat,
		Lon:        subscribeFlags.lon,
		IsForecast: subscribeFlags.isForecast,
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "channel %d subscribed at %s every %s\n", sub.ChannelID, sub.TimeOfDay, sub.Interval)
	return nil
}

func runUnsubscribe(cmd *cobra.Command, args []string) error {
	channelID, err := parseChannelID(args[0])
	if err != nil {
		return err
	}
	if err := application.GetSubscriptionUseCase().Cancel(cmd.Context(), channelID); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "channel %d unsubscribed\n", channelID)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	subs, err := application.GetSubscriptionUseCase().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tTIME\tINTERVAL\tLOCATION\tFORECAST\tLAST FIRED")
	for _, sub := range subs {
		lastFired := "never"
		if sub.LastFired != nil {
			lastFired = sub.LastFired.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
			sub.ChannelID, sub.TimeOfDay, sub.Interval, sub.Location, sub.IsForecast, lastFired)
	}
	return w.Flush()
}
