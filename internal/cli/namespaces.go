package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/pkg/printer"
)

var namespacesOutputFormat string

var NamespacesCmd = &cobra.Command{
	Use:     "namespaces",
	Aliases: []string{"ns", "namespace"},
	Short:   "List namespaces",
	Long:    `Lists the namespaces reported by the backend.`,
	Args:    cobra.NoArgs,
	RunE:    runNamespaces,
}

func init() {
	NamespacesCmd.Flags().StringVarP(&namespacesOutputFormat, "output", "o", "table", "Output format (table, json)")
}

func runNamespaces(cmd *cobra.Command, args []string) error {
	output, err := printer.ParseOutputType(namespacesOutputFormat)
	if err != nil {
		return err
	}
	if apiClient == nil {
		return fmt.Errorf("API client not initialized")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	namespaces, err := apiClient.ListNamespaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list namespaces: %w", err)
	}

	if output == printer.OutputTypeJSON {
		return printer.New(printer.OutputTypeJSON, false).PrintJSON(namespaces)
	}
	if len(namespaces) == 0 {
		printer.PrintInfo("No namespaces found")
		return nil
	}
	t := printer.NewTablePrinter(printer.Stdout())
	t.SetHeaders("Name")
	for _, ns := range namespaces {
		t.AddRow(ns)
	}
	return t.Render()
}
