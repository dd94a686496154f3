package steps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemstart/mldeploy/pkg/api"
)

func TestBuild(t *testing.T) {
	catalog := &api.Catalog{
		Program: "az",
		Steps: []api.StepConfig{
			{Name: "create-compute", Args: []string{"ml", "compute", "create"}, Tolerant: true, Timeout: time.Minute},
			{Name: "show-key", Args: []string{"ml", "online-endpoint", "get-credentials"}, Capture: "endpointKey", Secret: true},
			{Name: "smoke", Program: "curl", Args: []string{"-sf", "http://example"}},
		},
	}

	got := Build(catalog)
	require.Len(t, got, 3)

	assert.Equal(t, Step{
		Index:    1,
		Name:     "create-compute",
		Program:  "az",
		Args:     []string{"ml", "compute", "create"},
		Tolerant: true,
		Timeout:  time.Minute,
	}, got[0])
	assert.Equal(t, 2, got[1].Index)
	assert.True(t, got[1].Secret)
	assert.Equal(t, "endpointKey", got[1].Capture)
	assert.Equal(t, "curl", got[2].Program)
	assert.Equal(t, 3, got[2].Index)
}

func TestBuild_DefaultCatalog(t *testing.T) {
	catalog, err := api.DefaultCatalog(api.RunTypeDeploy)
	require.NoError(t, err)

	built := Build(catalog)
	require.Len(t, built, len(catalog.Steps))
	for i, s := range built {
		assert.Equal(t, i+1, s.Index)
		assert.Equal(t, api.DefaultProgram, s.Program)
	}
}
