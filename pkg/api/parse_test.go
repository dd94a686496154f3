package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadCatalog_Valid(t *testing.T) {
	content := `
name: custom
runType: deploy
required: [clientId, clientSecret, tenantId]
settings:
  resourceGroup: rg-test
steps:
  - name: create-compute
    tolerant: true
    timeout: 90s
    args: [ml, compute, create, --name, cpu]
  - name: show-uri
    capture: scoringUri
    args: [ml, online-endpoint, show, --query, scoring_uri]
  - name: smoke
    program: curl
    args: ["{{ .outputs.scoringUri }}"]
`
	dir := t.TempDir()
	f := filepath.Join(dir, "custom.deploy.yaml")
	require.NoError(t, os.WriteFile(f, []byte(content), 0o600))

	c, err := LoadCatalog(f)
	require.NoError(t, err)

	assert.Equal(t, dir, c.Dir)
	assert.Equal(t, f, c.FilePath)
	assert.Equal(t, "rg-test", c.Settings["resourceGroup"])
	require.Len(t, c.Steps, 3)
	assert.True(t, c.Steps[0].Tolerant)
	assert.Equal(t, 90*time.Second, c.Steps[0].Timeout)
	assert.Equal(t, "scoringUri", c.Steps[1].Capture)
	assert.Equal(t, "curl", c.ProgramFor(c.Steps[2]))
	assert.Equal(t, DefaultProgram, c.ProgramFor(c.Steps[0]))
	assert.Equal(t, []string{"az", "curl"}, c.RequiredTools())
}

func TestLoadCatalog_FileNotFound(t *testing.T) {
	_, err := LoadCatalog("/nonexistent/.deploy.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading catalog file")
}

func TestLoadCatalog_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "bad.deploy.yaml")
	require.NoError(t, os.WriteFile(f, []byte("{{invalid"), 0o600))

	_, err := LoadCatalog(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing catalog file")
}

func TestLoadCatalog_ValidationFails(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "empty.deploy.yaml")
	require.NoError(t, os.WriteFile(f, []byte("name: empty\nsteps: []\n"), 0o600))

	_, err := LoadCatalog(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating catalog")
	assert.Contains(t, err.Error(), "no steps")
}

func TestDefaultCatalog(t *testing.T) {
	deploy, err := DefaultCatalog(RunTypeDeploy)
	require.NoError(t, err)

	assert.Equal(t, RunTypeDeploy, deploy.RunType)
	assert.ElementsMatch(t,
		[]string{"subscriptionId", "resourceGroup", "workspaceName", "tenantId", "clientId", "clientSecret"},
		deploy.Required)

	var names []string
	for _, s := range deploy.Steps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"login",
		"set-subscription",
		"create-compute-cluster",
		"create-environment",
		"register-dataset",
		"submit-training-job",
		"create-endpoint",
		"create-deployment",
		"show-scoring-uri",
		"get-endpoint-key",
	}, names)

	assert.False(t, deploy.Steps[0].Tolerant, "login failure must abort")
	assert.True(t, deploy.Steps[2].Tolerant, "compute cluster may already exist")
	assert.False(t, deploy.Steps[5].Tolerant, "training job submission must succeed")
	assert.True(t, deploy.Steps[9].Secret)

	status, err := DefaultCatalog(RunTypeStatus)
	require.NoError(t, err)
	assert.Less(t, len(status.Required), len(deploy.Required))
}

func TestDefaultCatalog_Unknown(t *testing.T) {
	_, err := DefaultCatalog("teardown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deploy, status")
}

func TestStepConfig_MarshalYAML(t *testing.T) {
	def, err := DefaultCatalog(RunTypeDeploy)
	require.NoError(t, err)

	data, err := yaml.Marshal(def)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 30m0s")
	assert.NotContains(t, string(data), "1800000000000")

	back, err := ParseCatalog(data)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	assert.Equal(t, def.Steps, back.Steps)
	assert.Equal(t, def.Settings, back.Settings)
}
