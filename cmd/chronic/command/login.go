package command

import (
	"fmt"

	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/pointer"
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/tracking"
	"github.com/spf13/cobra"
)

var signupName string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and show the hydrated session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth, st *store.Store, profileSlice *profile.Slice, trackingSlice *tracking.Slice) error {
			userId, err := signin(cmd.Context(), auth)
			if err != nil {
				return err
			}
			fmt.Printf("signed in as user %d\n", userId)
			st.View(func() {
				printProfile(profileSlice.State())
				printTracking(trackingSlice.State())
			})
			return nil
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth) error {
			result, err := auth.Signup(cmd.Context(), email, password, signupName)
			if err != nil {
				return err
			}
			auth.Wait()
			fmt.Printf("registered user %d\n", result.UserId)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the session token and reset state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(auth *coordinator.Auth) {
			auth.Logout()
			fmt.Println("logged out")
		})
	},
}

func printProfile(state profile.State) {
	fmt.Printf("%s <%s>, member since %s\n", state.Name, state.Email, state.Since)
	for _, d := range state.Diagnoses {
		fmt.Printf("  diagnosis %d: %s %v\n", pointer.ToInt(d.DiagnosisId), d.Diagnosis, d.Keywords)
	}
	for _, s := range state.Symptoms {
		fmt.Printf("  symptom: %s\n", s)
	}
	for _, m := range state.Medications {
		fmt.Printf("  medication: %s %g %s %v\n", m.Medication, m.DosageNum, m.DosageUnit, m.TimeOfDay)
	}
}

func printTracking(state tracking.State) {
	fmt.Printf("today: %d tracked symptoms\n", len(state.PrimaryTracking.Symptoms))
	fmt.Printf("yesterday: %d tracked symptoms\n", len(state.SecondaryTracking.Symptoms))
	if state.Error != nil {
		fmt.Printf("tracking error: %s\n", *state.Error)
	}
}

func init() {
	signupCmd.Flags().StringVar(&signupName, "name", "", "Display name")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
}
