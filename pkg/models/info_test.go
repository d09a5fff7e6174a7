package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPodInfo_DecodesBackendFieldNames(t *testing.T) {
	body := `{"nome":"web-1","namespace":"apps","status":"Running","ip":"10.0.0.4","node":"n1","image":"nginx"}`

	var p PodInfo
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, ObjectKey{Namespace: "apps", Name: "web-1"}, p.Key())
	assert.Equal(t, []string{"web-1", "nginx"}, p.FilterFields())
}

func TestServiceInfo_FilterFieldsUseType(t *testing.T) {
	s := ServiceInfo{Name: "api", Namespace: "default", Type: "NodePort"}
	assert.Equal(t, []string{"api", "NodePort"}, s.FilterFields())
	assert.Equal(t, "default/api", s.Key().String())
}
