// Package resource implements the pod, deployment and service commands.
package resource

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmctl-dev/kmctl/internal/cli/common"
	"github.com/kmctl-dev/kmctl/internal/view"
)

var (
	apiClient view.Backend
	logger    = zap.NewNop()

	confirm       common.ConfirmFunc         = common.TerminalConfirm
	pickNamespace common.NamespacePickerFunc = defaultPicker
)

func SetAPIClient(client view.Backend) {
	apiClient = client
}

func SetLogger(l *zap.Logger) {
	logger = l
}

func newController() (*view.ListController, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("API client not initialized")
	}
	return view.NewListController(apiClient, logger), nil
}

var PodCmd = &cobra.Command{
	Use:     "pod",
	Aliases: []string{"pods", "po"},
	Short:   "Commands for managing pods",
	Long:    `List and delete the pods of a namespace.`,
	Example: `kmctl pod list -n default
kmctl pod list --filter nginx -o json
kmctl pod delete web-1 -n default`,
}

var DeploymentCmd = &cobra.Command{
	Use:     "deployment",
	Aliases: []string{"deployments", "deploy"},
	Short:   "Commands for managing deployments",
	Long:    `List, update and delete the deployments of a namespace.`,
	Example: `kmctl deployment list -n default
kmctl deployment update api -n default --image nginx:1.27 --replicas 3
kmctl deployment delete api -n default --yes`,
}

var ServiceCmd = &cobra.Command{
	Use:     "service",
	Aliases: []string{"services", "svc"},
	Short:   "Commands for managing services",
	Long:    `List and delete the services of a namespace.`,
	Example: `kmctl service list -n default
kmctl service delete api -n default`,
}

func init() {
	PodCmd.AddCommand(newListCmd(view.TabPods))
	PodCmd.AddCommand(newDeleteCmd(view.TabPods))

	DeploymentCmd.AddCommand(newListCmd(view.TabDeployments))
	DeploymentCmd.AddCommand(newDeleteCmd(view.TabDeployments))
	DeploymentCmd.AddCommand(newUpdateCmd())

	ServiceCmd.AddCommand(newListCmd(view.TabServices))
	ServiceCmd.AddCommand(newDeleteCmd(view.TabServices))
}
