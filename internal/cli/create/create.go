// Package create implements "kmctl create".
package create

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/kmctl-dev/kmctl/internal/form"
	"github.com/kmctl-dev/kmctl/pkg/models"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

// Creator is the part of the API client the create commands use.
type Creator interface {
	form.ResourceCreator
	form.ApplicationCreator
}

var (
	apiClient Creator
	logger    = zap.NewNop()
)

func SetAPIClient(client Creator) {
	apiClient = client
}

func SetLogger(l *zap.Logger) {
	logger = l
}

var (
	fromFile string
	dryRun   bool
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create cluster resources",
	Long: `Create a pod, deployment, secret, ingress, namespace or service, or a
deployment together with its service (application).`,
	Example: `kmctl create deployment api -n default --image nginx:latest --replicas 3 --container-port 8080
kmctl create secret creds -n default --data user=admin --data password=s3cret
kmctl create namespace team-a
kmctl create application shop -n default --image shop:1.0 --env MODE=prod
kmctl create -f deployment.yaml`,
	Args: cobra.NoArgs,
	RunE: runCreateFromFile,
}

func init() {
	CreateCmd.Flags().StringVarP(&fromFile, "filename", "f", "", "Create from a YAML or JSON request file")
	CreateCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Validate and print the request without sending it")

	for _, kind := range models.ResourceKinds {
		CreateCmd.AddCommand(newResourceCmd(kind))
	}
	CreateCmd.AddCommand(ApplicationCmd)
}

// noReset disables the delayed form reset; a command exits after one submit.
func noReset(time.Duration, func()) {}

// submitResource validates and sends one resource through the form controller.
func submitResource(ctx context.Context, state form.State) error {
	if apiClient == nil && !dryRun {
		return fmt.Errorf("API client not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if dryRun {
		if err := form.Validate(state); err != nil {
			return err
		}
		return printRequest(state.Request())
	}

	f := form.NewResourceForm(apiClient, logger, form.WithAfterFunc(noReset))
	f.SetKind(state.Kind())
	f.Edit(func(s *form.State) { *s = state })

	printer.PrintInfo(fmt.Sprintf("Creating %s %s...", state.Kind(), state.Name))
	if err := f.Submit(ctx); err != nil {
		return fmt.Errorf("failed to create %s: %w", state.Kind(), err)
	}
	printer.PrintSuccess(f.Banner().Message)
	return nil
}

func printRequest(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	_, err = printer.Stdout().Write(data)
	return err
}
