package resource

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/cli/common"
	"github.com/kmctl-dev/kmctl/internal/cli/tui"
	"github.com/kmctl-dev/kmctl/internal/view"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

type listOptions struct {
	namespace    string
	filter       string
	outputFormat string
	interactive  bool
}

func newListCmd(tab view.Tab) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", tab),
		Long: fmt.Sprintf(`List the %s of a namespace.

Without --namespace the first namespace reported by the backend is used,
or, with --interactive, a picker is shown.`, tab),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), tab, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "", "Namespace to list")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Only show entries whose name or "+secondaryField(tab)+" contains this text")
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "table", "Output format (table, json)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick the namespace interactively")
	return cmd
}

func runList(ctx context.Context, tab view.Tab, opts *listOptions) error {
	output, err := printer.ParseOutputType(opts.outputFormat)
	if err != nil {
		return err
	}
	ctrl, err := newController()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctrl.SelectTab(ctx, tab); err != nil {
		return err
	}
	if err := common.SelectNamespace(ctx, ctrl, apiClient, opts.namespace, opts.interactive, pickNamespace); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	if snap.Namespace == "" {
		return fmt.Errorf("no namespaces available")
	}
	return common.PrintInstances(printer.Stdout(), tab, ctrl.Filter(opts.filter), output)
}

func secondaryField(tab view.Tab) string {
	if tab == view.TabServices {
		return "type"
	}
	return "image"
}

func defaultPicker(ctx context.Context, lister tui.NamespaceLister) (string, bool, error) {
	return tui.PickNamespace(ctx, lister)
}
