package command

import (
	"fmt"

	"github.com/chronic-org/chronic/chartdata"
	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/store"
	"github.com/spf13/cobra"
)

var (
	dataStart string
	dataEnd   string
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print charting data for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, st *store.Store, profileSlice *profile.Slice, dataSlice *chartdata.Slice, dataCoordinator *coordinator.ChartData) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			var symptoms, medications []string
			st.View(func() {
				state := profileSlice.State()
				symptoms = append(symptoms, state.Symptoms...)
				for _, m := range state.Medications {
					medications = append(medications, m.Medication)
				}
			})
			err = dataCoordinator.PullData(ctx,
				client.DataQuery{UserId: userId, StartDate: dataStart, EndDate: dataEnd, Items: symptoms},
				client.DataQuery{UserId: userId, StartDate: dataStart, EndDate: dataEnd, Items: medications})
			if err != nil {
				return err
			}
			st.View(func() { printData(dataSlice.State()) })
			return nil
		})
	},
}

func printData(state chartdata.State) {
	for symptom, series := range state.Symptoms {
		fmt.Printf("%s: %d severity points\n", symptom, len(series))
	}
	for med, series := range state.Medications {
		fmt.Printf("%s: %d count points\n", med, len(series))
	}
	if state.Error != nil {
		fmt.Printf("data error: %s\n", *state.Error)
	}
}

func init() {
	dataCmd.Flags().StringVar(&dataStart, "start", "", "Start date, YYYY-MM-DD")
	dataCmd.Flags().StringVar(&dataEnd, "end", "", "End date, YYYY-MM-DD")
	rootCmd.AddCommand(dataCmd)
}
