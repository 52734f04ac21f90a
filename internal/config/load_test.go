package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()
	content := `
name: srl
topology: srl.clab.yml
runtime: docker
discovery: cli
probe:
  mode: gnmi
  username: admin
  password: admin
  timeout: 5s
  interval: 5s
deploy_args:
  - --reconfigure
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "labup.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "srl" {
		t.Errorf("Name = %q, want %q", cfg.Name, "srl")
	}
	if cfg.Topology != "srl.clab.yml" {
		t.Errorf("Topology = %q, want %q", cfg.Topology, "srl.clab.yml")
	}
	if cfg.Runtime != RuntimeDocker {
		t.Errorf("Runtime = %q, want %q", cfg.Runtime, RuntimeDocker)
	}
	if cfg.Probe.Mode != ProbeGNMI {
		t.Errorf("Probe.Mode = %q, want %q", cfg.Probe.Mode, ProbeGNMI)
	}
	if len(cfg.DeployArgs) != 1 || cfg.DeployArgs[0] != "--reconfigure" {
		t.Errorf("DeployArgs = %v, want [--reconfigure]", cfg.DeployArgs)
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	t.Parallel()
	content := "topology: lab.clab.yml\n"

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "labup.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Defaults fill in everything else
	if got := cfg.GetRuntime(); got != RuntimeDocker {
		t.Errorf("GetRuntime() = %q, want docker", got)
	}
	if got := cfg.Selector(); got != "containerlab" {
		t.Errorf("Selector() = %q, want bare containerlab", got)
	}
	if got := cfg.Probe.GetUsername(); got != "admin" {
		t.Errorf("GetUsername() = %q, want admin", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() = nil error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "labup.yaml")
	if err := os.WriteFile(configPath, []byte("topology: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() = nil error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Load() error = %v, want parse failure", err)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "labup.yaml")
	content := "topology: lab.clab.yml\nruntime: containerd\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() = nil error for invalid runtime")
	}
	if !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Load() error = %v, want validation failure", err)
	}

	// The unvalidated loader still reads it
	cfg, err := LoadWithoutValidation(configPath)
	if err != nil {
		t.Fatalf("LoadWithoutValidation() error = %v", err)
	}
	if cfg.Runtime != "containerd" {
		t.Errorf("Runtime = %q, want raw containerd", cfg.Runtime)
	}
}

func TestLoadFromBytes(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromBytes([]byte("name: ospf\ntopology: ospf.clab.yml\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes() error = %v", err)
	}
	if cfg.Name != "ospf" {
		t.Errorf("Name = %q, want ospf", cfg.Name)
	}

	if _, err := LoadFromBytes([]byte("probe:\n  mode: telnet\n")); err == nil {
		t.Error("LoadFromBytes() = nil error for invalid probe mode")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Name = "evpn"
	cfg.MetricsAddr = ":9804"

	path := filepath.Join(t.TempDir(), "labup.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save error = %v", err)
	}
	if loaded.Name != "evpn" {
		t.Errorf("Name = %q, want evpn", loaded.Name)
	}
	if loaded.MetricsAddr != ":9804" {
		t.Errorf("MetricsAddr = %q, want :9804", loaded.MetricsAddr)
	}
	if loaded.Probe.Username != "admin" {
		t.Errorf("Probe.Username = %q, want admin", loaded.Probe.Username)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, DefaultConfigFilename)
	if err := os.WriteFile(configPath, []byte("name: test"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	defer os.Chdir(originalDir)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}
	if want := filepath.Join(cwd, DefaultConfigFilename); found != want {
		t.Errorf("FindConfigFile() = %q, want %q", found, want)
	}
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, DefaultConfigFilename)
	if err := os.WriteFile(configPath, []byte("name: test"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	subDir := filepath.Join(tmpDir, "labs", "srl")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}
	if err := os.Chdir(subDir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	defer os.Chdir(originalDir)

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}
	if filepath.Base(found) != DefaultConfigFilename {
		t.Errorf("FindConfigFile() = %q, want a %s path", found, DefaultConfigFilename)
	}
}
