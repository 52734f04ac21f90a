package naming

import (
	"fmt"
	"strings"
)

// Naming helpers for containerlab-managed resources.
// containerlab prefixes everything it creates with "clab-{lab}".

const prefix = "clab"

// Container returns the container name for a topology node.
func Container(lab, node string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, lab, node)
}

// LabPrefix returns the name prefix shared by all of a lab's containers.
func LabPrefix(lab string) string {
	return fmt.Sprintf("%s-%s-", prefix, lab)
}

// LabDir returns the lab directory containerlab creates beside the topology.
func LabDir(lab string) string {
	return fmt.Sprintf("%s-%s", prefix, lab)
}

// Node extracts the topology node name from a container name, if the
// container belongs to the given lab. Returns the container name unchanged
// when it does not match the lab's prefix, so callers can display whatever
// the runtime reported.
func Node(containerName, lab string) string {
	if lab == "" {
		return containerName
	}
	return strings.TrimPrefix(containerName, LabPrefix(lab))
}
