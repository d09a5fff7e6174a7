package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/version"
)

type VersionOutput struct {
	KmctlVersion string `json:"kmctl_version"`
	GitCommit    string `json:"git_commit"`
	BuildDate    string `json:"build_date"`
}

var jsonOutput bool

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Displays the version of kmctl.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		output := VersionOutput{
			KmctlVersion: version.Version,
			GitCommit:    version.GitCommit,
			BuildDate:    version.BuildDate,
		}

		if jsonOutput {
			jsonBytes, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal version: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "kmctl version %s\n", output.KmctlVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", output.GitCommit)
		fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", output.BuildDate)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")
}
