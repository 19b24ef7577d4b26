package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and prune the send history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sent links, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := client().listHistory(cmd.Context(), historyFilterFlags(cmd))
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		if len(items) == 0 {
			fmt.Println("History is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tSTATUS\tPROFILE\tPROVIDER\tTITLE")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				item.ID,
				humanize.Time(item.Timestamp),
				historyStatus(item),
				truncate(item.ProfileName, 20),
				item.ServiceProvider,
				truncate(item.Title, 50))
		}
		return w.Flush()
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete one history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid history id %q", args[0])
		}
		if err := client().deleteHistoryItem(cmd.Context(), uint(id)); err != nil {
			return err
		}
		fmt.Printf("History entry %d deleted\n", id)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete history entries matching a filter, or all of them with --all",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := historyFilterFlags(cmd)
		all, _ := cmd.Flags().GetBool("all")
		if filter.IsEmpty() && !all {
			return fmt.Errorf("pass a filter or --all")
		}
		if err := client().clearHistory(cmd.Context(), filter); err != nil {
			return err
		}
		fmt.Println("History cleared")
		return nil
	},
}

var historyFiltersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the values history can be filtered by",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := client().historyFilters(cmd.Context())
		if err != nil {
			return err
		}

		mediaTypes := make([]string, len(filters.MediaTypes))
		for i, m := range filters.MediaTypes {
			mediaTypes[i] = string(m)
		}
		fmt.Printf("Providers:     %s\n", joinOrNone(filters.ServiceProviders))
		fmt.Printf("Media types:   %s\n", joinOrNone(mediaTypes))
		fmt.Printf("Service types: %s\n", joinOrNone(filters.ServiceTypes))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{historyListCmd, historyClearCmd} {
		cmd.Flags().String("provider", "", "Service provider, e.g. YouTube")
		cmd.Flags().String("media", "", "Media type (single_video, playlist, channel, torrent)")
		cmd.Flags().String("service", "", "Service type name, e.g. MeTube")
	}
	historyListCmd.Flags().IntP("limit", "l", 0, "Show at most this many entries")
	historyClearCmd.Flags().Bool("all", false, "Delete the whole history")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyFiltersCmd)
}

func historyFilterFlags(cmd *cobra.Command) domain.HistoryFilter {
	provider, _ := cmd.Flags().GetString("provider")
	media, _ := cmd.Flags().GetString("media")
	service, _ := cmd.Flags().GetString("service")
	return domain.HistoryFilter{
		ServiceProvider: provider,
		MediaType:       domain.MediaType(media),
		ServiceType:     service,
	}
}

func historyStatus(item domain.HistoryItem) string {
	if item.SentSuccessfully {
		return "sent"
	}
	return "failed"
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
