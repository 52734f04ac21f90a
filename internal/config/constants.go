package config

// Common port numbers used throughout the application.
const (
	// GNMIPort is the standard gNMI port on containerlab NOS images.
	GNMIPort = 57400
	// SSHPort is the standard SSH port.
	SSHPort = 22
)
