package models

// StatusResponse is the envelope every mutating endpoint answers with.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DeleteRequest is the body of the delete endpoints.
type DeleteRequest struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// UpdateDeploymentRequest is the body of POST /updateDeployment. Unset fields
// are left unchanged by the backend.
type UpdateDeploymentRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Replicas  *int32 `json:"replicas,omitempty"`
}
