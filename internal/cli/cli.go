// Package cli implements the top-level kmctl commands that do not belong to a
// resource group.
package cli

import (
	"context"

	"github.com/kmctl-dev/kmctl/internal/settings"
)

// NamespaceLister is the part of the API client the namespaces command uses.
type NamespaceLister interface {
	ListNamespaces(ctx context.Context) ([]string, error)
}

var (
	apiClient       NamespaceLister
	settingsManager *settings.Manager
)

func SetAPIClient(client NamespaceLister) {
	apiClient = client
}

func SetSettings(m *settings.Manager) {
	settingsManager = m
}
