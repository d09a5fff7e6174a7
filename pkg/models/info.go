package models

// ObjectKey identifies a listed object for display. Names are only unique
// within a namespace.
type ObjectKey struct {
	Namespace string
	Name      string
}

func (k ObjectKey) String() string {
	return k.Namespace + "/" + k.Name
}

// Instance is a read-only row returned by a list endpoint.
type Instance interface {
	Key() ObjectKey
	// FilterFields returns the values a text filter matches against: the
	// name first, then the kind's secondary column.
	FilterFields() []string
}

// PodInfo is a projection of a pod returned by /listAllPods.
type PodInfo struct {
	Name      string `json:"nome"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	IP        string `json:"ip"`
	Node      string `json:"node"`
	Image     string `json:"image"`
}

// DeploymentInfo is a projection of a deployment returned by /listAllDeployments.
type DeploymentInfo struct {
	Name          string            `json:"nome"`
	Namespace     string            `json:"namespace"`
	Status        string            `json:"status"`
	Image         string            `json:"image"`
	Replicas      int32             `json:"replicas"`
	ContainerPort int32             `json:"containerPort"`
	Selector      map[string]string `json:"selector,omitempty"`
}

// ServiceInfo is a projection of a service returned by /listAllServices.
type ServiceInfo struct {
	Name           string            `json:"nome"`
	Namespace      string            `json:"namespace"`
	Type           string            `json:"type"`
	Port           int32             `json:"port"`
	TargetPort     int32             `json:"targetPort"`
	Selector       map[string]string `json:"selector,omitempty"`
	ClusterIP      string            `json:"clusterIP"`
	ExternalIP     string            `json:"externalIP"`
	LoadBalancerIP string            `json:"loadBalancerIP"`
}

func (p PodInfo) Key() ObjectKey        { return ObjectKey{Namespace: p.Namespace, Name: p.Name} }
func (d DeploymentInfo) Key() ObjectKey { return ObjectKey{Namespace: d.Namespace, Name: d.Name} }
func (s ServiceInfo) Key() ObjectKey    { return ObjectKey{Namespace: s.Namespace, Name: s.Name} }

func (p PodInfo) FilterFields() []string        { return []string{p.Name, p.Image} }
func (d DeploymentInfo) FilterFields() []string { return []string{d.Name, d.Image} }
func (s ServiceInfo) FilterFields() []string    { return []string{s.Name, s.Type} }
