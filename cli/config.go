package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uamcli/uamcli/config"
)

func addConfigCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Working with configuration",
	}

	addConfigClientCommand(cmd)
	addConfigPathCommand(cmd)
	addConfigExportCommand(cmd)
	addConfigDeleteCommand(cmd)
	parent.AddCommand(cmd)
}

func addConfigClientCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Client configuration",
	}

	var (
		organizationID string
		projectID      string
		environmentID  string
		clientID       string
		clientSecret   string
	)

	set := &cobra.Command{
		Use:   "set",
		Short: "Sets new client configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{
				OrganizationID: organizationID,
				ProjectID:      projectID,
				EnvironmentID:  environmentID,
				ClientID:       clientID,
				ClientSecret:   clientSecret,
			}
			return cfg.SaveDefault(secrets)
		},
	}
	set.Flags().StringVarP(&organizationID, "organization", "o", "", "Organization ID")
	set.Flags().StringVarP(&projectID, "project", "p", "", "Project ID")
	set.Flags().StringVar(&environmentID, "environment", "", "Environment ID")
	set.Flags().StringVar(&clientID, "client-id", "", "Client ID for authentication")
	set.Flags().StringVar(&clientSecret, "client-secret", "", "Client secret for authentication")
	for _, name := range []string{"organization", "project", "environment", "client-id", "client-secret"} {
		_ = set.MarkFlagRequired(name)
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Prints the current client configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(secrets)
			if err != nil && err != config.ErrCredentialsNotProvided {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cfg)
		},
	}

	login := &cobra.Command{
		Use:   "login",
		Short: "Validates the stored credentials against the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if _, err := c.Login(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Credentials OK")
			return nil
		},
	}

	cmd.AddCommand(set, get, login)
	parent.AddCommand(cmd)
}

func addConfigPathCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Configuration path",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Prints the default configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	parent.AddCommand(cmd)
}

func addConfigExportCommand(parent *cobra.Command) {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exports the current configuration to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(secrets)
			if err != nil {
				return err
			}
			return cfg.Save(output, secrets)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("output")
	parent.AddCommand(cmd)
}

func addConfigDeleteCommand(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Deletes the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(secrets)
			if err != nil && err != config.ErrCredentialsNotProvided {
				return err
			}
			return cfg.Delete(secrets)
		},
	})
}
