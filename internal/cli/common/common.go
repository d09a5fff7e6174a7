// Package common holds helpers shared by the kmctl subcommands.
package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kmctl-dev/kmctl/internal/cli/tui"
	"github.com/kmctl-dev/kmctl/internal/view"
	"github.com/kmctl-dev/kmctl/pkg/models"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

// ConfirmFunc asks the user to approve an action.
type ConfirmFunc func(message string) (bool, error)

// TerminalConfirm prompts on stdin/stdout.
func TerminalConfirm(message string) (bool, error) {
	return tui.Confirm(os.Stdin, os.Stdout, message)
}

// NamespacePickerFunc lets the user choose a namespace interactively.
type NamespacePickerFunc func(ctx context.Context, lister tui.NamespaceLister) (string, bool, error)

// SelectNamespace points ctrl at a namespace and loads the selected tab. An
// explicit namespace wins; interactive mode asks; otherwise the first
// namespace the backend reports is used.
func SelectNamespace(ctx context.Context, ctrl *view.ListController, lister tui.NamespaceLister, namespace string, interactive bool, pick NamespacePickerFunc) error {
	if namespace == "" && interactive {
		chosen, ok, err := pick(ctx, lister)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no namespace selected")
		}
		namespace = chosen
	}
	if namespace != "" {
		return ctrl.SelectNamespace(ctx, namespace)
	}
	return ctrl.Refresh(ctx)
}

// PrintInstances writes items as a table or JSON.
func PrintInstances(w io.Writer, tab view.Tab, items []models.Instance, output printer.OutputType) error {
	if output == printer.OutputTypeJSON {
		return printer.New(printer.OutputTypeJSON, false).PrintJSON(items)
	}
	if len(items) == 0 {
		printer.PrintInfo(fmt.Sprintf("No %s found", tab))
		return nil
	}

	t := printer.NewTablePrinter(w)
	switch tab {
	case view.TabDeployments:
		t.SetHeaders("Name", "Namespace", "Status", "Image", "Replicas", "Port")
	case view.TabServices:
		t.SetHeaders("Name", "Namespace", "Type", "Port", "Target Port", "Cluster IP", "External IP")
	default:
		t.SetHeaders("Name", "Namespace", "Status", "IP", "Node", "Image")
	}
	for _, item := range items {
		switch it := item.(type) {
		case models.PodInfo:
			t.AddRow(it.Name, it.Namespace, it.Status, it.IP, it.Node, printer.TruncateString(it.Image, 50))
		case models.DeploymentInfo:
			t.AddRow(it.Name, it.Namespace, it.Status, printer.TruncateString(it.Image, 50), itoa(it.Replicas), itoa(it.ContainerPort))
		case models.ServiceInfo:
			t.AddRow(it.Name, it.Namespace, it.Type, itoa(it.Port), itoa(it.TargetPort), it.ClusterIP, firstNonEmpty(it.ExternalIP, it.LoadBalancerIP))
		}
	}
	return t.Render()
}

func itoa(v int32) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(int(v))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
