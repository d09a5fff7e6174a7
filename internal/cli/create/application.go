package create

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/form"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

var appOpts struct {
	namespace     string
	image         string
	replicas      int32
	containerPort int32
	serviceType   string
	servicePort   int32
	targetPort    int32
	env           []string
}

var ApplicationCmd = &cobra.Command{
	Use:     "application <name>",
	Aliases: []string{"app"},
	Short:   "Create a deployment and a matching service",
	Long: `Create a deployment and a service exposing it in one request.

Environment entries missing a key or a value are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := form.DefaultApplicationState()
		state.Namespace = appOpts.namespace
		state.Name = args[0]
		state.Image = appOpts.image
		state.Replicas = appOpts.replicas
		state.ContainerPort = appOpts.containerPort
		state.ServiceType = appOpts.serviceType
		state.ServicePort = appOpts.servicePort
		state.TargetPort = appOpts.targetPort
		state.Env = form.ParseRows(appOpts.env)
		return submitApplication(cmd.Context(), state)
	},
}

func init() {
	ApplicationCmd.Flags().StringVarP(&appOpts.namespace, "namespace", "n", "", "Namespace to create the application in")
	ApplicationCmd.Flags().StringVar(&appOpts.image, "image", "", "Container image")
	ApplicationCmd.Flags().Int32Var(&appOpts.replicas, "replicas", 1, "Number of replicas")
	ApplicationCmd.Flags().Int32Var(&appOpts.containerPort, "container-port", 8080, "Container port")
	ApplicationCmd.Flags().StringVar(&appOpts.serviceType, "service-type", "ClusterIP", "Service type (ClusterIP, NodePort, LoadBalancer, ExternalName)")
	ApplicationCmd.Flags().Int32Var(&appOpts.servicePort, "service-port", 80, "Service port")
	ApplicationCmd.Flags().Int32Var(&appOpts.targetPort, "target-port", 8080, "Target container port")
	ApplicationCmd.Flags().StringArrayVar(&appOpts.env, "env", nil, "Environment variable as KEY=VALUE, repeatable")
}

func submitApplication(ctx context.Context, state form.ApplicationState) error {
	if apiClient == nil && !dryRun {
		return fmt.Errorf("API client not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if dryRun {
		if err := form.ValidateApplication(state); err != nil {
			return err
		}
		return printRequest(state.Request())
	}

	f := form.NewApplicationForm(apiClient, logger, form.WithAfterFunc(noReset))
	f.Edit(func(s *form.ApplicationState) { *s = state })

	printer.PrintInfo(fmt.Sprintf("Creating application %s...", state.Name))
	if err := f.Submit(ctx); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	printer.PrintSuccess(f.Banner().Message)
	return nil
}
