package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/pointer"
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/timeofday"
	"github.com/spf13/cobra"
)

var (
	newName       string
	newEmail      string
	diagnosisName string
	keywords      []string
	symptomName   string
	newSymptom    string
	medName       string
	newMedName    string
	dosageNum     float64
	dosageUnit    string
	medTimes      []string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit the signed-in user's profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile after hydration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, st *store.Store, profileSlice *profile.Slice) error {
			if _, err := signin(cmd.Context(), auth); err != nil {
				return err
			}
			st.View(func() { printProfile(profileSlice.State()) })
			return nil
		})
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change the account name or email",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			var data client.UserUpdate
			update := map[string]interface{}{}
			if newName != "" {
				data.Name = &newName
				update["name"] = newName
			}
			if newEmail != "" {
				data.Email = &newEmail
				update["email"] = newEmail
			}
			if len(update) == 0 {
				return fmt.Errorf("nothing to change, pass --name or --new-email")
			}
			if err := profileCoordinator.EditUserProfile(ctx, userId, data, update); err != nil {
				return err
			}
			fmt.Println("profile updated")
			return nil
		})
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the account and all of its data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			if err := profileCoordinator.DeleteUserProfile(ctx, userId); err != nil {
				return err
			}
			auth.Logout()
			fmt.Println("account deleted")
			return nil
		})
	},
}

var diagnosisCmd = &cobra.Command{
	Use:   "diagnosis",
	Short: "Manage the profile's diagnoses",
}

var diagnosisAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Connect a catalog diagnosis to the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			diagnosisId, err := resolveDiagnosisId(ctx, gateway, diagnosisName)
			if err != nil {
				return err
			}
			err = profileCoordinator.ConnectDiagnosis(ctx, userId, diagnosisId,
				client.UserDiagnosisData{Keywords: keywords},
				profile.DiagnosisPayload{Diagnosis: diagnosisName, Keywords: keywords})
			if err != nil {
				return err
			}
			fmt.Printf("added diagnosis %s\n", diagnosisName)
			return nil
		})
	},
}

var diagnosisEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Replace the keyword list of a connected diagnosis",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, st *store.Store, profileSlice *profile.Slice, profileCoordinator *coordinator.Profile) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			diagnosisId, err := connectedDiagnosisId(st, profileSlice, diagnosisName)
			if err != nil {
				return err
			}
			err = profileCoordinator.UpdateUserDiagnosis(ctx, userId, diagnosisId,
				client.UserDiagnosisData{Keywords: keywords},
				profile.DiagnosisPayload{Diagnosis: diagnosisName, Keywords: keywords})
			if err != nil {
				return err
			}
			fmt.Printf("updated keywords for %s\n", diagnosisName)
			return nil
		})
	},
}

var diagnosisRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Disconnect a diagnosis from the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, st *store.Store, profileSlice *profile.Slice, profileCoordinator *coordinator.Profile) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			diagnosisId, err := connectedDiagnosisId(st, profileSlice, diagnosisName)
			if err != nil {
				return err
			}
			if err := profileCoordinator.DisconnectFromDiagnosis(ctx, userId, diagnosisId); err != nil {
				return err
			}
			fmt.Printf("removed diagnosis %s\n", diagnosisName)
			return nil
		})
	},
}

var symptomCmd = &cobra.Command{
	Use:   "symptom",
	Short: "Manage the profile's tracked symptoms",
}

var symptomAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Start tracking a catalog symptom",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			symptomId, err := resolveSymptomId(ctx, gateway, symptomName)
			if err != nil {
				return err
			}
			err = profileCoordinator.ConnectSymptom(ctx, userId, symptomId,
				client.UserSymptomData{}, symptomName)
			if err != nil {
				return err
			}
			fmt.Printf("tracking symptom %s\n", symptomName)
			return nil
		})
	},
}

var symptomChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Swap a tracked symptom for another catalog symptom",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			symptomId, err := resolveSymptomId(ctx, gateway, symptomName)
			if err != nil {
				return err
			}
			err = profileCoordinator.ChangeSymptom(ctx, userId, symptomId,
				client.UserSymptomData{Symptom: newSymptom},
				profile.SymptomChange{OldSymptom: symptomName, NewSymptom: newSymptom})
			if err != nil {
				return err
			}
			fmt.Printf("now tracking %s instead of %s\n", newSymptom, symptomName)
			return nil
		})
	},
}

var symptomRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Stop tracking a symptom",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			symptomId, err := resolveSymptomId(ctx, gateway, symptomName)
			if err != nil {
				return err
			}
			if err := profileCoordinator.DisconnectSymptom(ctx, userId, symptomId, symptomName); err != nil {
				return err
			}
			fmt.Printf("stopped tracking %s\n", symptomName)
			return nil
		})
	},
}

var medCmd = &cobra.Command{
	Use:   "med",
	Short: "Manage the profile's medications",
}

var medAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Start tracking a catalog medication",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			medId, err := resolveMedId(ctx, gateway, medName)
			if err != nil {
				return err
			}
			times, err := parseTimesOfDay(medTimes)
			if err != nil {
				return err
			}
			err = profileCoordinator.ConnectMed(ctx, userId, medId,
				client.UserMedicationData{
					DosageNum:  dosageNum,
					DosageUnit: dosageUnit,
					TimeOfDay:  medTimes,
				},
				profile.Medication{
					Medication: medName,
					DosageNum:  dosageNum,
					DosageUnit: dosageUnit,
					TimeOfDay:  times,
				})
			if err != nil {
				return err
			}
			fmt.Printf("tracking medication %s\n", medName)
			return nil
		})
	},
}

var medChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Replace a tracked medication or its dosage schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			medId, err := resolveMedId(ctx, gateway, medName)
			if err != nil {
				return err
			}
			replacement := newMedName
			if replacement == "" {
				replacement = medName
			}
			times, err := parseTimesOfDay(medTimes)
			if err != nil {
				return err
			}
			err = profileCoordinator.ChangeMed(ctx, userId, medId,
				client.UserMedicationData{
					Medication: newMedName,
					DosageNum:  dosageNum,
					DosageUnit: dosageUnit,
					TimeOfDay:  medTimes,
				},
				profile.MedicationChange{
					OldMed: medName,
					NewMed: profile.Medication{
						Medication: replacement,
						DosageNum:  dosageNum,
						DosageUnit: dosageUnit,
						TimeOfDay:  times,
					},
				})
			if err != nil {
				return err
			}
			fmt.Printf("updated medication %s\n", replacement)
			return nil
		})
	},
}

var medRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Stop tracking a medication",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, profileCoordinator *coordinator.Profile, gateway *client.Client) error {
			ctx := cmd.Context()
			userId, err := signin(ctx, auth)
			if err != nil {
				return err
			}
			medId, err := resolveMedId(ctx, gateway, medName)
			if err != nil {
				return err
			}
			if err := profileCoordinator.DisconnectMed(ctx, userId, medId, medName); err != nil {
				return err
			}
			fmt.Printf("stopped tracking %s\n", medName)
			return nil
		})
	},
}

func resolveDiagnosisId(ctx context.Context, gateway *client.Client, name string) (int, error) {
	diagnoses, err := gateway.GetAllDiagnoses(ctx)
	if err != nil {
		return 0, err
	}
	for _, d := range diagnoses {
		if strings.EqualFold(d.Diagnosis, name) {
			return d.DiagnosisId, nil
		}
	}
	return 0, fmt.Errorf("diagnosis %q is not in the catalog", name)
}

// connectedDiagnosisId looks up the id in the hydrated profile instead of
// the catalog so that only diagnoses already on the profile match.
func connectedDiagnosisId(st *store.Store, profileSlice *profile.Slice, name string) (int, error) {
	var diagnosisId *int
	st.View(func() {
		for _, d := range profileSlice.State().Diagnoses {
			if strings.EqualFold(d.Diagnosis, name) {
				diagnosisId = d.DiagnosisId
			}
		}
	})
	if diagnosisId == nil {
		return 0, fmt.Errorf("diagnosis %q is not on the profile", name)
	}
	return pointer.ToInt(diagnosisId), nil
}

func parseTimesOfDay(values []string) ([]timeofday.TimeOfDay, error) {
	times := make([]timeofday.TimeOfDay, 0, len(values))
	for _, v := range values {
		t := timeofday.TimeOfDay(v)
		if !timeofday.IsValid(t) {
			return nil, fmt.Errorf("unknown time of day %q", v)
		}
		times = append(times, t)
	}
	return times, nil
}

func init() {
	profileEditCmd.Flags().StringVar(&newName, "name", "", "New display name")
	profileEditCmd.Flags().StringVar(&newEmail, "new-email", "", "New account email")

	for _, cmd := range []*cobra.Command{diagnosisAddCmd, diagnosisEditCmd, diagnosisRemoveCmd} {
		cmd.Flags().StringVar(&diagnosisName, "diagnosis", "", "Diagnosis name")
	}
	diagnosisAddCmd.Flags().StringSliceVar(&keywords, "keywords", nil, "Search keywords for the awareness feed")
	diagnosisEditCmd.Flags().StringSliceVar(&keywords, "keywords", nil, "Search keywords for the awareness feed")

	for _, cmd := range []*cobra.Command{symptomAddCmd, symptomChangeCmd, symptomRemoveCmd} {
		cmd.Flags().StringVar(&symptomName, "symptom", "", "Symptom name")
	}
	symptomChangeCmd.Flags().StringVar(&newSymptom, "to", "", "Replacement symptom name")

	for _, cmd := range []*cobra.Command{medAddCmd, medChangeCmd, medRemoveCmd} {
		cmd.Flags().StringVar(&medName, "med", "", "Medication name")
	}
	for _, cmd := range []*cobra.Command{medAddCmd, medChangeCmd} {
		cmd.Flags().Float64Var(&dosageNum, "dosage", 0, "Dosage amount")
		cmd.Flags().StringVar(&dosageUnit, "unit", "", "Dosage unit, e.g. mg")
		cmd.Flags().StringSliceVar(&medTimes, "time-of-day", nil, "Times of day: AM, Midday, PM, Evening")
	}
	medChangeCmd.Flags().StringVar(&newMedName, "to", "", "Replacement medication name")

	diagnosisCmd.AddCommand(diagnosisAddCmd, diagnosisEditCmd, diagnosisRemoveCmd)
	symptomCmd.AddCommand(symptomAddCmd, symptomChangeCmd, symptomRemoveCmd)
	medCmd.AddCommand(medAddCmd, medChangeCmd, medRemoveCmd)
	profileCmd.AddCommand(profileShowCmd, profileEditCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd, diagnosisCmd, symptomCmd, medCmd)
}
