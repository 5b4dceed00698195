// Package cli wires the command tree for the uamcli binary.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uamcli/uamcli/client"
	"github.com/uamcli/uamcli/config"
)

var (
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "uamcli",
	Short:         "Command-line client for the cloud Asset Manager",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.TraceLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable trace logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	addConfigCommand(rootCmd)
	addAssetCommand(rootCmd)
}

// Execute runs the command tree under an interruptible context.
func Execute() error {
	return rootCmd.ExecuteContext(interruptContext())
}

// interruptContext cancels on SIGINT or SIGTERM.
func interruptContext() context.Context {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-quit
		cancel()
	}()
	return ctx
}

// secrets is the credential store used by every command.
var secrets config.Secrets = config.Vault{}

// newClient builds an API client from the persisted configuration.
func newClient() (*client.Client, error) {
	cfg, err := config.Load(secrets)
	if err != nil {
		return nil, err
	}
	return client.New(
		cfg.OrganizationID,
		cfg.ProjectID,
		cfg.EnvironmentID,
		cfg.ClientID,
		cfg.ClientSecret,
	)
}

// printJSON writes a value as JSON on the command's stdout.
func printJSON(w io.Writer, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
