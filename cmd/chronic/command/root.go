package command

import (
	"context"
	"fmt"
	"os"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/config"
	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	logLevel string
	email    string
	password string
)

// Run executes f with dependencies supplied by the chronic DI graph.
// f must return an error or nothing.
func Run(f interface{}) error {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.NewConfig,
			logger.NewProductionLogger,
			logger.Suggar,
			client.NewClient,
		),
		coordinator.Module,
		fx.Invoke(f),
	)
	if err := app.Err(); err != nil {
		return err
	}
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(ctx)
}

// signin authenticates with the root credentials flags and waits for the
// session to hydrate.
func signin(ctx context.Context, auth *coordinator.Auth) (int, error) {
	result, err := auth.Login(ctx, email, password)
	if err != nil {
		return 0, err
	}
	auth.Wait()
	return result.UserId, nil
}

var rootCmd = &cobra.Command{
	Use:   "chronic",
	Short: "Command line client for the chronic symptom tracker",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Overwrite zap's log level
		return os.Setenv("LOG_LEVEL", logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "error", "Log Level")
	rootCmd.PersistentFlags().StringVarP(&email, "email", "e", "", "Account email")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "Account password")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
