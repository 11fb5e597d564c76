package command

import (
	"fmt"

	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/latest"
	"github.com/chronic-org/chronic/store"
	"github.com/spf13/cobra"
)

var feedKeywords []string

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the latest awareness articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, st *store.Store, latestSlice *latest.Slice, latestCoordinator *coordinator.Latest) error {
			ctx := cmd.Context()
			if _, err := signin(ctx, auth); err != nil {
				return err
			}
			if err := latestCoordinator.FetchLatest(ctx, feedKeywords...); err != nil {
				return err
			}
			var articleIds []int
			st.View(func() {
				articleIds = latestSlice.State().ArticleIds
			})
			articles, err := latestCoordinator.Articles(ctx, articleIds)
			if err != nil {
				return err
			}
			for _, a := range articles {
				fmt.Printf("%s\n  %s, %s (%s)\n  %s\n", a.Title, a.Authors, a.Journal, a.Date, a.Url)
			}
			return nil
		})
	},
}

func init() {
	latestCmd.Flags().StringSliceVar(&feedKeywords, "keywords", nil, "Search keywords, defaults to the profile's diagnosis keywords")
	rootCmd.AddCommand(latestCmd)
}
