package command

import (
	"context"
	"fmt"
	"time"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/timeofday"
	"github.com/chronic-org/chronic/tracking"
	"github.com/spf13/cobra"
)

var (
	trackSymptom  string
	trackTimespan string
	trackSeverity int
	trackMed      string
	trackSlot     string
	trackNumber   int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Record today's symptom severity or medication intake",
}

var trackSymptomCmd = &cobra.Command{
	Use:   "symptom",
	Short: "Record a symptom severity for a timespan of today",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, trackingCoordinator *coordinator.Tracking, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			symptomId, err := resolveSymptomId(ctx, gateway, trackSymptom)
			if err != nil {
				return err
			}
			today, _ := coordinator.TrackingDates(time.Now())
			err = trackingCoordinator.CreateSymptomTrackingRecord(ctx, userId,
				client.SymptomTrackingData{
					SymptomId: symptomId,
					TrackDate: today,
					Timespan:  trackTimespan,
					Severity:  trackSeverity,
				},
				tracking.SymptomRecordPayload{
					View:     tracking.Primary,
					Symptom:  trackSymptom,
					Timespan: trackTimespan,
					Severity: trackSeverity,
				})
			if err != nil {
				return err
			}
			fmt.Printf("recorded %s severity %d for %s\n", trackSymptom, trackSeverity, trackTimespan)
			return nil
		})
	},
}

var trackMedCmd = &cobra.Command{
	Use:   "med",
	Short: "Record a medication count for a time of day of today",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, trackingCoordinator *coordinator.Tracking, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			slot := timeofday.TimeOfDay(trackSlot)
			if !timeofday.IsValid(slot) {
				return fmt.Errorf("unknown time of day %q", trackSlot)
			}
			medId, err := resolveMedId(ctx, gateway, trackMed)
			if err != nil {
				return err
			}
			today, _ := coordinator.TrackingDates(time.Now())
			err = trackingCoordinator.CreateMedTrackingRecord(ctx, userId,
				client.MedTrackingData{
					MedId:     medId,
					TrackDate: today,
					TimeOfDay: string(slot),
					Number:    trackNumber,
				},
				tracking.MedRecordPayload{
					View:      tracking.Primary,
					TimeOfDay: slot,
					Med:       trackMed,
					Number:    trackNumber,
				})
			if err != nil {
				return err
			}
			fmt.Printf("recorded %d x %s at %s\n", trackNumber, trackMed, slot)
			return nil
		})
	},
}

func resolveSymptomId(ctx context.Context, gateway *client.Client, name string) (int, error) {
	symptoms, err := gateway.GetAllSymptoms(ctx)
	if err != nil {
		return 0, err
	}
	for _, s := range symptoms {
		if s.Symptom == name {
			return s.SymptomId, nil
		}
	}
	return 0, fmt.Errorf("symptom %q is not in the catalog", name)
}

func resolveMedId(ctx context.Context, gateway *client.Client, name string) (int, error) {
	meds, err := gateway.GetAllMeds(ctx)
	if err != nil {
		return 0, err
	}
	for _, m := range meds {
		if m.Medication == name {
			return m.MedId, nil
		}
	}
	return 0, fmt.Errorf("medication %q is not in the catalog", name)
}

func init() {
	trackSymptomCmd.Flags().StringVar(&trackSymptom, "symptom", "", "Symptom name")
	trackSymptomCmd.Flags().StringVar(&trackTimespan, "timespan", "", "Timespan label, e.g. \"12-4 PM\"")
	trackSymptomCmd.Flags().IntVar(&trackSeverity, "severity", 0, "Severity from 1 to 10")
	trackMedCmd.Flags().StringVar(&trackMed, "med", "", "Medication name")
	trackMedCmd.Flags().StringVar(&trackSlot, "time-of-day", string(timeofday.AM), "AM, Midday, PM or Evening")
	trackMedCmd.Flags().IntVar(&trackNumber, "number", 1, "Doses taken")
	trackCmd.AddCommand(trackSymptomCmd)
	trackCmd.AddCommand(trackMedCmd)
	rootCmd.AddCommand(trackCmd)
}
