package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalToMap(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestCreateResourceRequest_DeploymentSendsOnlyDeploymentFields(t *testing.T) {
	req := CreateResourceRequest{
		Name:      "api",
		Namespace: "default",
		Spec:      DeploymentSpec{Image: "nginx:latest", Replicas: 3, ContainerPort: 8080},
	}

	got := marshalToMap(t, req)
	assert.Equal(t, map[string]any{
		"kind":          "deployment",
		"name":          "api",
		"namespace":     "default",
		"image":         "nginx:latest",
		"replicas":      float64(3),
		"containerPort": float64(8080),
	}, got)
}

func TestCreateResourceRequest_DeploymentOmitsZeroContainerPort(t *testing.T) {
	req := CreateResourceRequest{
		Name:      "api",
		Namespace: "default",
		Spec:      DeploymentSpec{Image: "nginx", Replicas: 1},
	}

	got := marshalToMap(t, req)
	assert.NotContains(t, got, "containerPort")
	assert.Equal(t, float64(1), got["replicas"])
}

func TestCreateResourceRequest_PodUsesContainerWireKind(t *testing.T) {
	req := CreateResourceRequest{Name: "web", Namespace: "apps", Spec: PodSpec{Image: "busybox"}}

	got := marshalToMap(t, req)
	assert.Equal(t, "container", got["kind"])
	assert.Equal(t, "busybox", got["image"])
	assert.Len(t, got, 4)
}

func TestCreateResourceRequest_NamespaceOmitsNamespaceField(t *testing.T) {
	req := CreateResourceRequest{Name: "team-a", Namespace: "ignored", Spec: NamespaceSpec{}}

	got := marshalToMap(t, req)
	assert.Equal(t, map[string]any{"kind": "namespace", "name": "team-a"}, got)
}

func TestCreateResourceRequest_SecretWithEmptyDataOmitsData(t *testing.T) {
	req := CreateResourceRequest{Name: "creds", Namespace: "default", Spec: SecretSpec{SecretType: "Opaque"}}

	got := marshalToMap(t, req)
	assert.NotContains(t, got, "data")
	assert.Equal(t, "Opaque", got["secretType"])
}

func TestCreateResourceRequest_MarshalWithoutSpecFails(t *testing.T) {
	_, err := json.Marshal(CreateResourceRequest{Name: "x"})
	require.Error(t, err)
}

func TestCreateResourceRequest_UnmarshalRebuildsVariant(t *testing.T) {
	tests := []struct {
		name string
		body string
		want CreateResourceRequest
	}{
		{
			name: "container alias",
			body: `{"kind":"container","name":"web","namespace":"apps","image":"nginx"}`,
			want: CreateResourceRequest{Name: "web", Namespace: "apps", Spec: PodSpec{Image: "nginx"}},
		},
		{
			name: "service",
			body: `{"kind":"service","name":"svc","namespace":"apps","serviceType":"NodePort","port":80,"targetPort":8080}`,
			want: CreateResourceRequest{Name: "svc", Namespace: "apps", Spec: ServiceSpec{ServiceType: "NodePort", Port: 80, TargetPort: 8080}},
		},
		{
			name: "namespace drops namespace",
			body: `{"kind":"namespace","name":"team","namespace":"default"}`,
			want: CreateResourceRequest{Name: "team", Spec: NamespaceSpec{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CreateResourceRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateResourceRequest_UnmarshalUnknownKind(t *testing.T) {
	var got CreateResourceRequest
	err := json.Unmarshal([]byte(`{"kind":"cronjob","name":"x"}`), &got)
	require.Error(t, err)
}

func TestCreateApplicationRequest_OmitsEmptyEnv(t *testing.T) {
	got := marshalToMap(t, CreateApplicationRequest{
		Namespace: "default", Name: "shop", Image: "shop:1", Replicas: 2,
		ContainerPort: 8080, ServiceType: "ClusterIP", ServicePort: 80, TargetPort: 8080,
	})
	assert.NotContains(t, got, "env")
	assert.Equal(t, "shop", got["name"])
}

func TestResourceKind_DisplayName(t *testing.T) {
	assert.Equal(t, "Deployment", KindDeployment.DisplayName())
	assert.Equal(t, "Pod", KindPod.DisplayName())
	assert.False(t, KindNamespace.Namespaced())
	assert.True(t, KindSecret.Namespaced())
}
