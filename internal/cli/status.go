package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/client"
	"github.com/kmctl-dev/kmctl/internal/config"
	"github.com/kmctl-dev/kmctl/internal/version"
)

var (
	statusOutputFormat string
	statusWait         bool
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the backend is reachable",
	Long:  `Displays the configured backend address, whether it answers, and how many namespaces it reports.`,
	// Override PersistentPreRunE so a broken settings file does not hide the status.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: runStatus,
}

func init() {
	StatusCmd.Flags().StringVarP(&statusOutputFormat, "output", "o", "table", "Output format (table, json)")
	StatusCmd.Flags().BoolVar(&statusWait, "wait", false, "Retry with backoff until the backend answers")
}

type statusInfo struct {
	Version    string `json:"version"`
	APIBaseURL string `json:"api_base_url"`
	API        string `json:"api"`
	Namespaces int    `json:"namespaces"`
	Error      string `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	info := statusInfo{
		Version:    version.Version,
		APIBaseURL: cfg.APIBaseURL,
		API:        "unreachable",
		Namespaces: -1,
	}

	c := client.NewClient(cfg.APIBaseURL, client.WithTimeout(cfg.APITimeout))
	ping := c.Ping
	if statusWait {
		ping = c.WaitReady
	}
	if err := ping(ctx); err != nil {
		info.Error = err.Error()
	} else {
		info.API = "ok"
		if namespaces, err := c.ListNamespaces(ctx); err == nil {
			info.Namespaces = len(namespaces)
		}
	}

	if statusOutputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("kmctl version:   %s\n", info.Version)
	fmt.Printf("Backend:         %s\n", info.APIBaseURL)
	fmt.Printf("API:             %s\n", info.API)
	if info.Namespaces >= 0 {
		fmt.Printf("Namespaces:      %d\n", info.Namespaces)
	}
	if info.Error != "" {
		fmt.Printf("Error:           %s\n", info.Error)
	}
	return nil
}
