// Package config defines the configuration model for labup.
//
// The [Config] struct describes a lab: the topology to deploy, the
// container runtime to query for the lab's containers, and the probe
// used to decide when the lab is ready. It is loaded from a YAML file
// (labup.yaml by default) or assembled by the init wizard. Operational
// timeouts come from LABUP_* environment variables via [LoadTimeouts].
package config
