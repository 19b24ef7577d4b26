package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var shareCmd = &cobra.Command{
	Use:   "share [url]",
	Short: "Send a link to one or more server profiles",
	Long: `Send a link to the default profile, or to every profile named with -p.
Profiles are matched by id, by exact name, or by the closest fuzzy name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client()
		ctx := cmd.Context()
		names, _ := cmd.Flags().GetStringSlice("profile")

		var ids []string
		if len(names) > 0 {
			profiles, err := c.listProfiles(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				p, err := resolveProfile(profiles, name)
				if err != nil {
					return err
				}
				ids = append(ids, p.ID)
			}
		}

		results, err := shareToProfiles(ctx, c, args[0], ids)
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Success {
				fmt.Printf("Sent to %s (history #%d)\n", r.ProfileName, r.HistoryID)
				continue
			}
			failed++
			fmt.Printf("Failed to send to %s: %s\n", r.ProfileName, r.Message)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sends failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	shareCmd.Flags().StringSliceP("profile", "p", nil, "Profile id or name (repeatable, defaults to the default profile)")
}

// shareToProfiles sends link to every profile id concurrently, or once to the
// server's default profile when ids is empty. Results keep the order of ids.
// A rejected send is a result, not an error; errors are API failures only.
func shareToProfiles(ctx context.Context, c *apiClient, link string, ids []string) ([]shareResponse, error) {
	if len(ids) == 0 {
		ids = []string{""}
	}

	results := make([]shareResponse, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			resp, err := c.share(gctx, link, id)
			if err != nil {
				return err
			}
			results[i] = *resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
