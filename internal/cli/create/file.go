package create

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"

	"github.com/kmctl-dev/kmctl/internal/form"
	"github.com/kmctl-dev/kmctl/pkg/models"
)

const applicationKind = "application"

func runCreateFromFile(cmd *cobra.Command, args []string) error {
	if fromFile == "" {
		return cmd.Help()
	}
	data, err := os.ReadFile(fromFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", fromFile, err)
	}
	return createFromDocument(cmd.Context(), data)
}

// createFromDocument accepts a single YAML or JSON request. The kind field
// selects the resource; "application" selects the composite request. Values
// are taken as written: the form defaults do not apply.
func createFromDocument(ctx context.Context, data []byte) error {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse request file: %w", err)
	}

	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return fmt.Errorf("request file must contain a single object: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(head.Kind), applicationKind) {
		var req models.CreateApplicationRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("invalid application request: %w", err)
		}
		state := form.ApplicationState{
			Namespace:     req.Namespace,
			Name:          req.Name,
			Image:         req.Image,
			Replicas:      req.Replicas,
			ContainerPort: req.ContainerPort,
			ServiceType:   req.ServiceType,
			ServicePort:   req.ServicePort,
			TargetPort:    req.TargetPort,
			Env:           form.NewRows(),
		}
		if len(req.Env) > 0 {
			state.Env = make(form.Rows, 0, len(req.Env))
			for _, k := range sets.List(sets.KeySet(req.Env)) {
				state.Env = append(state.Env, form.KeyValueRow{Key: k, Value: req.Env[k]})
			}
		}
		return submitApplication(ctx, state)
	}

	var req models.CreateResourceRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("invalid resource request: %w", err)
	}
	return submitResource(ctx, form.StateFromRequest(&req))
}
