package form

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/kmctl-dev/kmctl/pkg/models"
)

const (
	defaultReplicas      int32 = 1
	defaultContainerPort int32 = 8080
	defaultServicePort   int32 = 80
	defaultPort          int32 = 80
	defaultTargetPort    int32 = 8080
	defaultServiceType         = string(corev1.ServiceTypeClusterIP)
	defaultSecretType          = string(corev1.SecretTypeOpaque)
	maxPort              int32 = 65535
)

// ServiceTypes are the accepted values for a service's type.
var ServiceTypes = sets.New(
	string(corev1.ServiceTypeClusterIP),
	string(corev1.ServiceTypeNodePort),
	string(corev1.ServiceTypeLoadBalancer),
	string(corev1.ServiceTypeExternalName),
)

// Fields holds the kind-specific inputs of the resource form. Each kind has
// its own implementation; fields of other kinds do not exist on it.
type Fields interface {
	Kind() models.ResourceKind
	validate() *FieldError
	spec() models.ResourceSpec
	clone() Fields
}

// PodFields are the inputs of a pod.
type PodFields struct {
	Image string
}

// DeploymentFields are the inputs of a deployment. ContainerPort 0 means none.
type DeploymentFields struct {
	Image         string
	Replicas      int32
	ContainerPort int32
}

// SecretFields are the inputs of a secret.
type SecretFields struct {
	SecretType string
	Data       Rows
}

// IngressFields are the inputs of an ingress.
type IngressFields struct {
	Host        string
	ServiceName string
	ServicePort int32
}

// ServiceFields are the inputs of a service.
type ServiceFields struct {
	ServiceType string
	Port        int32
	TargetPort  int32
}

// NamespaceFields has no inputs beyond the name.
type NamespaceFields struct{}

// DefaultFields returns the initial inputs for kind.
func DefaultFields(kind models.ResourceKind) Fields {
	switch kind {
	case models.KindDeployment:
		return &DeploymentFields{Replicas: defaultReplicas, ContainerPort: defaultContainerPort}
	case models.KindSecret:
		return &SecretFields{SecretType: defaultSecretType, Data: NewRows()}
	case models.KindIngress:
		return &IngressFields{ServicePort: defaultServicePort}
	case models.KindService:
		return &ServiceFields{ServiceType: defaultServiceType, Port: defaultPort, TargetPort: defaultTargetPort}
	case models.KindNamespace:
		return &NamespaceFields{}
	default:
		return &PodFields{}
	}
}

func (*PodFields) Kind() models.ResourceKind        { return models.KindPod }
func (*DeploymentFields) Kind() models.ResourceKind { return models.KindDeployment }
func (*SecretFields) Kind() models.ResourceKind     { return models.KindSecret }
func (*IngressFields) Kind() models.ResourceKind    { return models.KindIngress }
func (*ServiceFields) Kind() models.ResourceKind    { return models.KindService }
func (*NamespaceFields) Kind() models.ResourceKind  { return models.KindNamespace }

func (f *PodFields) validate() *FieldError {
	if blank(f.Image) {
		return fieldError("image", "image is required for a pod")
	}
	return nil
}

func (f *DeploymentFields) validate() *FieldError {
	if blank(f.Image) {
		return fieldError("image", "image is required for a deployment")
	}
	if f.Replicas < 1 {
		return fieldError("replicas", "replicas must be greater than 0")
	}
	if f.ContainerPort < 0 || f.ContainerPort > maxPort {
		return fieldError("containerPort", "container port must be between 0 and 65535")
	}
	return nil
}

func (f *SecretFields) validate() *FieldError {
	if !f.Data.AllComplete() {
		return fieldError("data", "every secret data row needs a key and a value")
	}
	return nil
}

func (f *IngressFields) validate() *FieldError {
	if blank(f.Host) {
		return fieldError("host", "host is required for an ingress")
	}
	if blank(f.ServiceName) {
		return fieldError("serviceName", "service name is required for an ingress")
	}
	if !validPort(f.ServicePort) {
		return fieldError("servicePort", "service port must be between 1 and 65535")
	}
	return nil
}

func (f *ServiceFields) validate() *FieldError {
	if blank(f.ServiceType) {
		return fieldError("serviceType", "service type is required")
	}
	if !ServiceTypes.Has(strings.TrimSpace(f.ServiceType)) {
		return fieldError("serviceType", "service type must be one of "+strings.Join(sets.List(ServiceTypes), ", "))
	}
	if !validPort(f.Port) {
		return fieldError("port", "service port must be between 1 and 65535")
	}
	if !validPort(f.TargetPort) {
		return fieldError("targetPort", "target port must be between 1 and 65535")
	}
	return nil
}

func (*NamespaceFields) validate() *FieldError { return nil }

func (f *PodFields) spec() models.ResourceSpec {
	return models.PodSpec{Image: strings.TrimSpace(f.Image)}
}

func (f *DeploymentFields) spec() models.ResourceSpec {
	return models.DeploymentSpec{
		Image:         strings.TrimSpace(f.Image),
		Replicas:      f.Replicas,
		ContainerPort: f.ContainerPort,
	}
}

func (f *SecretFields) spec() models.ResourceSpec {
	return models.SecretSpec{SecretType: f.SecretType, Data: f.Data.ToMap()}
}

func (f *IngressFields) spec() models.ResourceSpec {
	return models.IngressSpec{
		Host:        strings.TrimSpace(f.Host),
		ServiceName: strings.TrimSpace(f.ServiceName),
		ServicePort: f.ServicePort,
	}
}

func (f *ServiceFields) spec() models.ResourceSpec {
	return models.ServiceSpec{
		ServiceType: strings.TrimSpace(f.ServiceType),
		Port:        f.Port,
		TargetPort:  f.TargetPort,
	}
}

func (*NamespaceFields) spec() models.ResourceSpec { return models.NamespaceSpec{} }

func (f *PodFields) clone() Fields        { c := *f; return &c }
func (f *DeploymentFields) clone() Fields { c := *f; return &c }
func (f *IngressFields) clone() Fields    { c := *f; return &c }
func (f *ServiceFields) clone() Fields    { c := *f; return &c }
func (f *NamespaceFields) clone() Fields  { return &NamespaceFields{} }

func (f *SecretFields) clone() Fields {
	return &SecretFields{SecretType: f.SecretType, Data: f.Data.clone()}
}

// FieldsFromSpec converts a request spec back into editable inputs.
func FieldsFromSpec(spec models.ResourceSpec) Fields {
	switch s := spec.(type) {
	case models.PodSpec:
		return &PodFields{Image: s.Image}
	case models.DeploymentSpec:
		return &DeploymentFields{Image: s.Image, Replicas: s.Replicas, ContainerPort: s.ContainerPort}
	case models.SecretSpec:
		rows := make(Rows, 0, len(s.Data))
		for _, k := range sets.List(sets.KeySet(s.Data)) {
			rows = append(rows, KeyValueRow{Key: k, Value: s.Data[k]})
		}
		if len(rows) == 0 {
			rows = NewRows()
		}
		secretType := s.SecretType
		if secretType == "" {
			secretType = defaultSecretType
		}
		return &SecretFields{SecretType: secretType, Data: rows}
	case models.IngressSpec:
		return &IngressFields{Host: s.Host, ServiceName: s.ServiceName, ServicePort: s.ServicePort}
	case models.ServiceSpec:
		return &ServiceFields{ServiceType: s.ServiceType, Port: s.Port, TargetPort: s.TargetPort}
	default:
		return &NamespaceFields{}
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validPort(p int32) bool {
	return p >= 1 && p <= maxPort
}
