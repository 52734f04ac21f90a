// Package labels centralizes the container labels stamped by containerlab.
//
// containerlab marks every node container it creates with a well-known set of
// labels; the bare `containerlab` key carries the lab name. Discovery filters
// on these labels, so the keys live here rather than being scattered as string
// literals through the discovery code.
package labels

import "strings"

// Label keys set by containerlab on every node container.
const (
	// KeyLab carries the lab name and is present on all lab containers.
	KeyLab = "containerlab"

	// KeyNodeName is the node's short name from the topology file.
	KeyNodeName = "clab-node-name"

	// KeyNodeKind is the node kind (srl, vr-sros, linux, ...).
	KeyNodeKind = "clab-node-kind"

	// KeyNodeType is the kind-specific node type, when set.
	KeyNodeType = "clab-node-type"

	// KeyNodeGroup is the topology group the node belongs to.
	KeyNodeGroup = "clab-node-group"

	// KeyTopoFile is the absolute path of the deployed topology file.
	KeyTopoFile = "clab-topo-file"

	// KeyLabDir is the node's lab directory on the host.
	KeyLabDir = "clab-node-lab-dir"

	// KeyOwner is the user that deployed the lab.
	KeyOwner = "clab-owner"
)

// Selector returns the runtime label filter for a lab's containers.
// With a lab name it pins the filter to that lab; without one it matches any
// container carrying the containerlab label. The returned string is valid both
// as a `docker ps --filter label=...` value and as an Engine API label filter.
func Selector(labName string) string {
	if labName == "" {
		return KeyLab
	}
	return KeyLab + "=" + labName
}

// LabName extracts the lab name from a selector produced by Selector.
// Returns the empty string for the bare-key form.
func LabName(selector string) string {
	key, value, found := strings.Cut(selector, "=")
	if !found || key != KeyLab {
		return ""
	}
	return value
}

// NodeName returns the node's short name from a container's label map,
// falling back to the empty string when containerlab did not set it.
func NodeName(containerLabels map[string]string) string {
	return containerLabels[KeyNodeName]
}

// NodeKind returns the node kind from a container's label map.
func NodeKind(containerLabels map[string]string) string {
	return containerLabels[KeyNodeKind]
}

// IsLabContainer reports whether a label map identifies a containerlab node.
func IsLabContainer(containerLabels map[string]string) bool {
	_, ok := containerLabels[KeyLab]
	return ok
}
