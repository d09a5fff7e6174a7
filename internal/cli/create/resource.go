package create

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmctl-dev/kmctl/internal/form"
	"github.com/kmctl-dev/kmctl/pkg/models"
)

type resourceOptions struct {
	namespace     string
	image         string
	replicas      int32
	containerPort int32
	secretType    string
	data          []string
	host          string
	serviceName   string
	servicePort   int32
	serviceType   string
	port          int32
	targetPort    int32
}

func newResourceCmd(kind models.ResourceKind) *cobra.Command {
	opts := &resourceOptions{}
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <name>", kind),
		Short: fmt.Sprintf("Create a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitResource(cmd.Context(), opts.state(kind, args[0]))
		},
	}

	flags := cmd.Flags()
	if kind.Namespaced() {
		flags.StringVarP(&opts.namespace, "namespace", "n", "", "Namespace to create the "+string(kind)+" in")
	}
	switch kind {
	case models.KindPod:
		flags.StringVar(&opts.image, "image", "", "Container image")
	case models.KindDeployment:
		flags.StringVar(&opts.image, "image", "", "Container image")
		flags.Int32Var(&opts.replicas, "replicas", 1, "Number of replicas")
		flags.Int32Var(&opts.containerPort, "container-port", 8080, "Container port, 0 for none")
	case models.KindSecret:
		flags.StringVar(&opts.secretType, "type", "Opaque", "Secret type")
		flags.StringArrayVar(&opts.data, "data", nil, "Secret entry as KEY=VALUE, repeatable")
	case models.KindIngress:
		flags.StringVar(&opts.host, "host", "", "Host name routed by the ingress")
		flags.StringVar(&opts.serviceName, "service-name", "", "Backend service name")
		flags.Int32Var(&opts.servicePort, "service-port", 80, "Backend service port")
	case models.KindService:
		flags.StringVar(&opts.serviceType, "type", "ClusterIP", "Service type (ClusterIP, NodePort, LoadBalancer, ExternalName)")
		flags.Int32Var(&opts.port, "port", 80, "Service port")
		flags.Int32Var(&opts.targetPort, "target-port", 8080, "Target container port")
	}
	return cmd
}

// state maps the flags onto the form inputs of kind.
func (o *resourceOptions) state(kind models.ResourceKind, name string) form.State {
	fields := form.DefaultFields(kind)
	switch f := fields.(type) {
	case *form.PodFields:
		f.Image = o.image
	case *form.DeploymentFields:
		f.Image = o.image
		f.Replicas = o.replicas
		f.ContainerPort = o.containerPort
	case *form.SecretFields:
		f.SecretType = o.secretType
		f.Data = form.ParseRows(o.data)
	case *form.IngressFields:
		f.Host = o.host
		f.ServiceName = o.serviceName
		f.ServicePort = o.servicePort
	case *form.ServiceFields:
		f.ServiceType = o.serviceType
		f.Port = o.port
		f.TargetPort = o.targetPort
	}
	return form.State{Namespace: o.namespace, Name: name, Fields: fields}
}
