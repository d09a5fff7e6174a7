// Package cli assembles the kmctl command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmctl-dev/kmctl/internal/cli"
	"github.com/kmctl-dev/kmctl/internal/cli/create"
	"github.com/kmctl-dev/kmctl/internal/cli/resource"
	"github.com/kmctl-dev/kmctl/internal/cli/tui/theme"
	"github.com/kmctl-dev/kmctl/internal/client"
	"github.com/kmctl-dev/kmctl/internal/config"
	"github.com/kmctl-dev/kmctl/internal/logging"
	"github.com/kmctl-dev/kmctl/internal/settings"
)

var verbose bool

// Root returns the kmctl root command with every subcommand registered.
func Root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kmctl",
		Short: "Manage cluster workloads through the cluster-management API",
		Long: `kmctl lists, creates, updates and deletes pods, deployments, services,
secrets, ingresses and namespaces through the cluster-management backend.

The backend address is read from KMCTL_API_BASE_URL (default http://localhost:7000).`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(cli.NamespacesCmd)
	rootCmd.AddCommand(resource.PodCmd)
	rootCmd.AddCommand(resource.DeploymentCmd)
	rootCmd.AddCommand(resource.ServiceCmd)
	rootCmd.AddCommand(create.CreateCmd)
	rootCmd.AddCommand(cli.ThemeCmd)
	rootCmd.AddCommand(cli.StatusCmd)
	rootCmd.AddCommand(cli.VersionCmd)

	return rootCmd
}

// setup builds the configuration, logger, API client and settings shared by
// the subcommands.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New("kmctl", level, cfg.IsDevelopment())
	if err != nil {
		return err
	}

	c := client.NewClient(cfg.APIBaseURL, client.WithTimeout(cfg.APITimeout), client.WithLogger(logger))

	store, err := settings.NewFileStore(cfg.SettingsFile)
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	manager := settings.NewManager(store, logger)
	theme.Apply(manager.Theme())

	logger.Debug("configured", zap.String("api_base_url", cfg.APIBaseURL), zap.Duration("timeout", cfg.APITimeout), zap.String("theme", string(manager.Theme())))

	cli.SetAPIClient(c)
	cli.SetSettings(manager)
	resource.SetAPIClient(c)
	resource.SetLogger(logger)
	create.SetAPIClient(c)
	create.SetLogger(logger)
	return nil
}
