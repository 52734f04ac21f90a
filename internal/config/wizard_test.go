package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWizardLabName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{"empty is optional", "", false},
		{"valid simple name", "srl", false},
		{"valid with hyphen", "dc-fabric", false},
		{"valid with underscore and dot", "ospf_area0.v2", false},
		{"valid mixed case", "EvpnLab", false},
		{"starts with hyphen", "-lab", true},
		{"contains space", "my lab", true},
		{"contains slash", "lab/1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWizardLabName(tt.input)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateWizardTopology(t *testing.T) {
	assert.Error(t, validateWizardTopology(""))
	assert.Error(t, validateWizardTopology("   "))
	assert.NoError(t, validateWizardTopology("srl.clab.yml"))
	assert.NoError(t, validateWizardTopology("s3://labs/srl.clab.yml"))
}

func TestWizardResult_ToConfig(t *testing.T) {
	result := &WizardResult{
		Name:     "srl",
		Topology: "srl.clab.yml",
		Runtime:  RuntimePodman,
		Mode:     ProbeTCP,
		Username: "clab",
		Password: "clab@123",
	}

	cfg := result.ToConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "srl", cfg.Name)
	assert.Equal(t, "srl.clab.yml", cfg.Topology)
	assert.Equal(t, RuntimePodman, cfg.Runtime)
	assert.Equal(t, DiscoveryCLI, cfg.Discovery)
	assert.Equal(t, ProbeTCP, cfg.Probe.Mode)
	assert.Equal(t, "clab", cfg.Probe.Username)
	assert.Equal(t, "clab@123", cfg.Probe.Password)
	assert.Equal(t, "5s", cfg.Probe.Timeout)
	assert.Equal(t, "5s", cfg.Probe.Interval)
	assert.Nil(t, cfg.Probe.Insecure, "insecure only applies to the gnmi probe")

	assert.NoError(t, cfg.ValidateForDeploy())
}

func TestWizardResult_ToConfigGNMI(t *testing.T) {
	cfg := (&WizardResult{
		Topology: "srl.clab.yml",
		Runtime:  RuntimeDocker,
		Mode:     ProbeGNMI,
		Username: "admin",
		Password: "admin",
	}).ToConfig()

	require.NotNil(t, cfg.Probe.Insecure, "generated YAML spells out the insecure default")
	assert.True(t, *cfg.Probe.Insecure)
}

func TestWriteConfigYAML(t *testing.T) {
	cfg := (&WizardResult{
		Name:     "srl",
		Topology: "srl.clab.yml",
		Runtime:  RuntimeDocker,
		Mode:     ProbeGNMI,
		Username: "admin",
		Password: "admin",
	}).ToConfig()

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, WriteConfigYAML(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The written YAML must parse back into an equivalent config
	var loaded Config
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, cfg.Name, loaded.Name)
	assert.Equal(t, cfg.Topology, loaded.Topology)
	assert.Equal(t, cfg.Probe.Mode, loaded.Probe.Mode)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
