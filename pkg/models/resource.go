package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"
	"k8s.io/utils/ptr"
)

// ResourceKind is the type of cluster object a create request targets.
type ResourceKind string

const (
	KindPod        ResourceKind = "pod"
	KindDeployment ResourceKind = "deployment"
	KindSecret     ResourceKind = "secret"
	KindIngress    ResourceKind = "ingress"
	KindNamespace  ResourceKind = "namespace"
	KindService    ResourceKind = "service"
)

// wireKindPod is the name the backend uses for single-container pods.
const wireKindPod = "container"

// ResourceKinds lists every creatable kind in selector order.
var ResourceKinds = []ResourceKind{KindPod, KindDeployment, KindSecret, KindIngress, KindNamespace, KindService}

// ParseResourceKind accepts a kind name case-insensitively. The backend's
// "container" alias resolves to KindPod.
func ParseResourceKind(s string) (ResourceKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == wireKindPod {
		return KindPod, nil
	}
	for _, k := range ResourceKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

// WireKind returns the kind string sent to the backend.
func (k ResourceKind) WireKind() string {
	if k == KindPod {
		return wireKindPod
	}
	return string(k)
}

// DisplayName returns the kind formatted for messages, e.g. "Deployment".
func (k ResourceKind) DisplayName() string {
	return strcase.UpperCamelCase(string(k))
}

// Namespaced reports whether objects of this kind live inside a namespace.
func (k ResourceKind) Namespaced() bool {
	return k != KindNamespace
}

// ResourceSpec is the kind-specific part of a CreateResourceRequest. The set of
// implementations is closed: PodSpec, DeploymentSpec, SecretSpec, IngressSpec,
// ServiceSpec and NamespaceSpec.
type ResourceSpec interface {
	Kind() ResourceKind
	applyTo(w *resourceWire)
}

// PodSpec creates a single-container pod.
type PodSpec struct {
	Image string
}

// DeploymentSpec creates a deployment. ContainerPort 0 means no port is declared.
type DeploymentSpec struct {
	Image         string
	Replicas      int32
	ContainerPort int32
}

// SecretSpec creates a secret from already-filtered key/value data.
type SecretSpec struct {
	SecretType string
	Data       map[string]string
}

// IngressSpec routes a host to a service port.
type IngressSpec struct {
	Host        string
	ServiceName string
	ServicePort int32
}

// ServiceSpec exposes a port with the given service type.
type ServiceSpec struct {
	ServiceType string
	Port        int32
	TargetPort  int32
}

// NamespaceSpec carries no fields beyond the request name.
type NamespaceSpec struct{}

func (PodSpec) Kind() ResourceKind        { return KindPod }
func (DeploymentSpec) Kind() ResourceKind { return KindDeployment }
func (SecretSpec) Kind() ResourceKind     { return KindSecret }
func (IngressSpec) Kind() ResourceKind    { return KindIngress }
func (ServiceSpec) Kind() ResourceKind    { return KindService }
func (NamespaceSpec) Kind() ResourceKind  { return KindNamespace }

func (s PodSpec) applyTo(w *resourceWire) {
	w.Image = s.Image
}

func (s DeploymentSpec) applyTo(w *resourceWire) {
	w.Image = s.Image
	w.Replicas = positive(s.Replicas)
	w.ContainerPort = positive(s.ContainerPort)
}

func (s SecretSpec) applyTo(w *resourceWire) {
	w.SecretType = s.SecretType
	if len(s.Data) > 0 {
		w.Data = s.Data
	}
}

func (s IngressSpec) applyTo(w *resourceWire) {
	w.Host = s.Host
	w.ServiceName = s.ServiceName
	w.ServicePort = positive(s.ServicePort)
}

func (s ServiceSpec) applyTo(w *resourceWire) {
	w.ServiceType = s.ServiceType
	w.Port = positive(s.Port)
	w.TargetPort = positive(s.TargetPort)
}

func (NamespaceSpec) applyTo(*resourceWire) {}

// CreateResourceRequest is the body of POST /createResource. Only the fields
// belonging to Spec's kind are serialized.
type CreateResourceRequest struct {
	Name      string
	Namespace string
	Spec      ResourceSpec
}

// Kind returns the kind of the request's spec, or "" when no spec is set.
func (r *CreateResourceRequest) Kind() ResourceKind {
	if r.Spec == nil {
		return ""
	}
	return r.Spec.Kind()
}

// resourceWire is the flat object the backend decodes.
type resourceWire struct {
	Kind          string            `json:"kind"`
	Namespace     string            `json:"namespace,omitempty"`
	Name          string            `json:"name"`
	Image         string            `json:"image,omitempty"`
	Replicas      *int32            `json:"replicas,omitempty"`
	ContainerPort *int32            `json:"containerPort,omitempty"`
	SecretType    string            `json:"secretType,omitempty"`
	Data          map[string]string `json:"data,omitempty"`
	Host          string            `json:"host,omitempty"`
	ServiceName   string            `json:"serviceName,omitempty"`
	ServicePort   *int32            `json:"servicePort,omitempty"`
	ServiceType   string            `json:"serviceType,omitempty"`
	Port          *int32            `json:"port,omitempty"`
	TargetPort    *int32            `json:"targetPort,omitempty"`
}

func (r CreateResourceRequest) MarshalJSON() ([]byte, error) {
	if r.Spec == nil {
		return nil, fmt.Errorf("create request %q has no resource spec", r.Name)
	}
	w := resourceWire{
		Kind: r.Spec.Kind().WireKind(),
		Name: r.Name,
	}
	if r.Spec.Kind().Namespaced() {
		w.Namespace = r.Namespace
	}
	r.Spec.applyTo(&w)
	return json.Marshal(w)
}

func (r *CreateResourceRequest) UnmarshalJSON(data []byte) error {
	var w resourceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, err := ParseResourceKind(w.Kind)
	if err != nil {
		return err
	}

	r.Name = w.Name
	r.Namespace = w.Namespace
	switch kind {
	case KindPod:
		r.Spec = PodSpec{Image: w.Image}
	case KindDeployment:
		r.Spec = DeploymentSpec{
			Image:         w.Image,
			Replicas:      ptr.Deref(w.Replicas, 0),
			ContainerPort: ptr.Deref(w.ContainerPort, 0),
		}
	case KindSecret:
		r.Spec = SecretSpec{SecretType: w.SecretType, Data: w.Data}
	case KindIngress:
		r.Spec = IngressSpec{
			Host:        w.Host,
			ServiceName: w.ServiceName,
			ServicePort: ptr.Deref(w.ServicePort, 0),
		}
	case KindService:
		r.Spec = ServiceSpec{
			ServiceType: w.ServiceType,
			Port:        ptr.Deref(w.Port, 0),
			TargetPort:  ptr.Deref(w.TargetPort, 0),
		}
	case KindNamespace:
		r.Namespace = ""
		r.Spec = NamespaceSpec{}
	}
	return nil
}

// CreateApplicationRequest is the body of POST /createApplication: a
// deployment and a matching service created in one call.
type CreateApplicationRequest struct {
	Namespace     string            `json:"namespace"`
	Name          string            `json:"name"`
	Image         string            `json:"image"`
	Replicas      int32             `json:"replicas"`
	ContainerPort int32             `json:"containerPort"`
	ServiceType   string            `json:"serviceType"`
	ServicePort   int32             `json:"servicePort"`
	TargetPort    int32             `json:"targetPort"`
	Env           map[string]string `json:"env,omitempty"`
}

func positive(v int32) *int32 {
	if v <= 0 {
		return nil
	}
	return ptr.To(v)
}
