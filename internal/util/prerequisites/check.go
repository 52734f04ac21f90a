// Package prerequisites verifies the external binaries labup delegates to.
//
// Deployment, discovery, and the capability probe are all performed by tools
// labup shells out to; a missing binary otherwise surfaces as a confusing
// subprocess error minutes into a deploy.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents an external binary that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory for the command being run.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DeployTools returns the tools needed to deploy or destroy a lab.
func DeployTools() []Tool {
	return []Tool{
		{
			Name:        "containerlab",
			Required:    true,
			Description: "Deploys and destroys the lab topology",
			InstallURL:  "https://containerlab.dev/install/",
		},
	}
}

// DiscoveryTools returns the tools needed for CLI-mode container discovery.
// runtime is the configured container runtime binary (docker or podman).
func DiscoveryTools(runtime string) []Tool {
	if runtime == "" {
		runtime = "docker"
	}
	return []Tool{
		{
			Name:        runtime,
			Required:    true,
			Description: "Lists the lab's containers by label",
			InstallURL:  "https://docs.docker.com/engine/install/",
		},
	}
}

// ProbeTools returns the tools needed for the gNMI capability probe.
// binary overrides the default gnmic binary name when non-empty.
func ProbeTools(binary string) []Tool {
	if binary == "" {
		binary = "gnmic"
	}
	return []Tool{
		{
			Name:        binary,
			Required:    true,
			Description: "Probes the nodes' gNMI endpoints for readiness",
			InstallURL:  "https://gnmic.openconfig.net/install/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error naming every missing required tool, or nil.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available in PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// toolVersion attempts to get the version of a tool, best effort.
// containerlab and gnmic answer to "version", docker to "--version".
func toolVersion(name string) string {
	versionArgs := []string{"version", "--version", "-v"}

	for _, arg := range versionArgs {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, arg)
		output, err := cmd.Output()
		if err != nil {
			continue
		}
		line, _, _ := strings.Cut(string(output), "\n")
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}

	return ""
}
