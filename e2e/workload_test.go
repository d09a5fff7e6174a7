//go:build e2e

package e2e

import (
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	result := RunKmctl(t, "status")
	RequireSuccess(t, result)
	RequireOutputContains(t, result, "API:             ok")
}

func TestCreateRejectsInvalidInputLocally(t *testing.T) {
	result := RunKmctl(t, "create", "service", "bad-svc", "-n", "default", "--port", "70000")
	RequireFailure(t, result)
	RequireOutputContains(t, result, "service port must be between 1 and 65535")
}

func TestDeploymentLifecycle(t *testing.T) {
	name := UniqueNameWithPrefix("e2e-api")

	RequireSuccess(t, RunKmctl(t, "create", "deployment", name,
		"-n", "default", "--image", "nginx:latest", "--replicas", "1", "--container-port", "80"))

	Eventually(t, 60*time.Second, func() bool {
		return contains(ListNames(t, "deployment", "default"), name)
	}, "deployment "+name+" to be listed")

	RequireSuccess(t, RunKmctl(t, "deployment", "update", name, "-n", "default", "--replicas", "2"))

	result := RunKmctl(t, "deployment", "update", name, "-n", "default")
	RequireFailure(t, result)

	RequireSuccess(t, RunKmctl(t, "deployment", "delete", name, "-n", "default", "--yes"))

	Eventually(t, 60*time.Second, func() bool {
		return !contains(ListNames(t, "deployment", "default"), name)
	}, "deployment "+name+" to be removed")
}

func TestApplicationCreatesDeploymentAndService(t *testing.T) {
	name := UniqueNameWithPrefix("e2e-shop")

	RequireSuccess(t, RunKmctl(t, "create", "application", name,
		"-n", "default", "--image", "nginx:latest", "--container-port", "80", "--target-port", "80", "--env", "MODE=e2e"))

	Eventually(t, 60*time.Second, func() bool {
		return contains(ListNames(t, "service", "default"), name)
	}, "service "+name+" to be listed")

	RequireSuccess(t, RunKmctl(t, "service", "delete", name, "-n", "default", "--yes"))
	RequireSuccess(t, RunKmctl(t, "deployment", "delete", name, "-n", "default", "--yes"))
}
