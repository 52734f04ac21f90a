package prerequisites

import (
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	// Test with a tool that definitely exists - try multiple common tools
	// because different environments have different tools available
	possibleTools := []string{"sh", "ls", "cat", "go", "bash"}

	var foundTool string
	for _, tool := range possibleTools {
		results := Check([]Tool{{Name: tool, Required: false}})
		if len(results.Results) > 0 && results.Results[0].Found {
			foundTool = tool
			break
		}
	}

	if foundTool == "" {
		t.Skip("no common tools found in PATH, skipping test")
	}

	results := Check([]Tool{
		{
			Name:        foundTool,
			Required:    true,
			Description: "Test tool",
			InstallURL:  "https://example.com",
		},
	})

	if len(results.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results.Results))
	}
	if !results.Results[0].Found {
		t.Errorf("expected %s to be found", foundTool)
	}
	if results.Results[0].Path == "" {
		t.Errorf("expected path to be set")
	}
	if results.HasErrors() {
		t.Errorf("expected no errors")
	}
	if err := results.Error(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestCheckMissingTool(t *testing.T) {
	results := Check([]Tool{
		{
			Name:        "labup-nonexistent-tool-xyz123",
			Required:    true,
			Description: "A tool that does not exist",
			InstallURL:  "https://example.com/install",
		},
	})

	if !results.HasErrors() {
		t.Error("expected errors for missing required tool")
	}

	err := results.Error()
	if err == nil {
		t.Fatal("expected error for missing required tool")
	}
	if !strings.Contains(err.Error(), "labup-nonexistent-tool-xyz123") {
		t.Errorf("error should name the missing tool, got: %v", err)
	}
	if !strings.Contains(err.Error(), "https://example.com/install") {
		t.Errorf("error should carry the install URL, got: %v", err)
	}
}

func TestCheckOptionalToolMissing(t *testing.T) {
	results := Check([]Tool{
		{
			Name:     "labup-nonexistent-tool-xyz123",
			Required: false,
		},
	})

	if results.HasErrors() {
		t.Error("missing optional tool should not be an error")
	}
	if results.Error() != nil {
		t.Error("expected nil error when only optional tools are missing")
	}
	if len(results.Missing) != 1 {
		t.Errorf("expected the tool to be reported missing, got %d", len(results.Missing))
	}
}

func TestToolSets(t *testing.T) {
	t.Parallel()

	if tools := DeployTools(); len(tools) != 1 || tools[0].Name != "containerlab" {
		t.Errorf("DeployTools = %+v, want the containerlab binary", tools)
	}

	tests := []struct {
		name     string
		runtime  string
		expected string
	}{
		{"default runtime", "", "docker"},
		{"docker", "docker", "docker"},
		{"podman", "podman", "podman"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tools := DiscoveryTools(tt.runtime)
			if len(tools) != 1 || tools[0].Name != tt.expected {
				t.Errorf("DiscoveryTools(%q) = %+v, want %q", tt.runtime, tools, tt.expected)
			}
		})
	}

	if tools := ProbeTools(""); len(tools) != 1 || tools[0].Name != "gnmic" {
		t.Errorf("ProbeTools(\"\") = %+v, want gnmic", tools)
	}
	if tools := ProbeTools("/usr/local/bin/gnmic"); tools[0].Name != "/usr/local/bin/gnmic" {
		t.Errorf("ProbeTools should honor the override, got %+v", tools)
	}
}
