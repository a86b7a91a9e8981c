package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"websmith/internal/bootstrap"
	"websmith/internal/config"
)

var driverFlag string

var rootCmd = &cobra.Command{
	Use:   "websmith",
	Short: "Drive a browser with short, readable steps",
	Long: `websmith drives a web page through named form fields, link text and
locators, waiting for elements before it touches them.

Examples:
  websmith run login.yaml checkout.yaml    # Run scenarios, stop at the first failure
  websmith shell --driver=static           # Interactive shell on the static HTML driver`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run FILE...",
	Short: "Run scenario files in order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(bootstrap.Options{Mode: bootstrap.ModeRun, Files: args, Driver: driverFlag})
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive shell that runs one step per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(bootstrap.Options{Mode: bootstrap.ModeShell, Driver: driverFlag})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "",
		fmt.Sprintf("browser driver (%s or %s), overrides BROWSER_DRIVER", config.DriverPlaywright, config.DriverStatic))

	rootCmd.AddCommand(runCmd, shellCmd)
}

func execute(opts bootstrap.Options) error {
	app := bootstrap.NewApp(opts)

	startCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		return err
	}

	signal := <-app.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStop()

	if err := app.Stop(stopCtx); err != nil {
		return err
	}

	if signal.ExitCode != 0 {
		os.Exit(signal.ExitCode)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
