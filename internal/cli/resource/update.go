package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/view"
	"github.com/kmctl-dev/kmctl/pkg/models"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

type updateOptions struct {
	namespace string
	image     string
	replicas  int32
}

func newUpdateCmd() *cobra.Command {
	opts := &updateOptions{}
	cmd := &cobra.Command{
		Use:   "update <deployment-name>",
		Short: "Change the image or replica count of a deployment",
		Long: `Change the image and/or replica count of a deployment.

Only values that differ from the deployment's current ones are sent. At least
one of --image or --replicas is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "", "Namespace of the deployment (required)")
	cmd.Flags().StringVar(&opts.image, "image", "", "New container image")
	cmd.Flags().Int32Var(&opts.replicas, "replicas", 0, "New replica count")
	_ = cmd.MarkFlagRequired("namespace")
	return cmd
}

func runUpdate(ctx context.Context, name string, opts *updateOptions) error {
	ctrl, err := newController()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctrl.SelectTab(ctx, view.TabDeployments); err != nil {
		return err
	}
	if err := ctrl.SelectNamespace(ctx, opts.namespace); err != nil {
		return err
	}

	item, ok := ctrl.Find(name)
	if !ok {
		return fmt.Errorf("deployment %s not found in namespace %s", name, opts.namespace)
	}
	deployment, ok := item.(models.DeploymentInfo)
	if !ok {
		return fmt.Errorf("%s is not a deployment", name)
	}

	draft := ctrl.RequestUpdate(deployment)
	draft.Image = opts.image
	draft.Replicas = opts.replicas

	if err := ctrl.SubmitUpdate(ctx, draft); err != nil {
		if errors.Is(err, view.ErrNothingToUpdate) {
			return err
		}
		return fmt.Errorf("failed to update deployment: %w", err)
	}
	printer.PrintSuccess(ctrl.Snapshot().Notice)
	return nil
}
