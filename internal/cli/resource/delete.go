package resource

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/view"
	"github.com/kmctl-dev/kmctl/pkg/cli/config"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

type deleteOptions struct {
	namespace string
	yes       bool
}

func newDeleteCmd(tab view.Tab) *cobra.Command {
	opts := &deleteOptions{}
	kind := tab.Kind()
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("delete <%s-name>", kind),
		Short: fmt.Sprintf("Delete a %s", kind),
		Long: fmt.Sprintf(`Delete a %s from a namespace.

You are asked to confirm unless --yes is given.`, kind),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd.Context(), tab, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "", "Namespace of the "+string(kind)+" (required)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Delete without asking for confirmation")
	_ = cmd.MarkFlagRequired("namespace")
	return cmd
}

func runDelete(ctx context.Context, tab view.Tab, name string, opts *deleteOptions) error {
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

	pending, err := ctrl.RequestDelete(tab.Kind(), name, opts.namespace)
	if err != nil {
		return err
	}

	if config.GetConfirmDeletes() && !opts.yes {
		ok, err := confirm(pending.Message)
		if err != nil {
			return err
		}
		if !ok {
			ctrl.CancelDelete()
			printer.PrintWarning("Delete cancelled")
			return nil
		}
	}

	printer.PrintInfo(fmt.Sprintf("Deleting %s %s in %s...", tab.Kind(), name, opts.namespace))
	if err := ctrl.ConfirmDelete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", tab.Kind(), err)
	}
	printer.PrintSuccess(ctrl.Snapshot().Notice)
	return nil
}
