// Package docker discovers lab containers through the container
// runtime, either by shelling out to the runtime CLI or by talking to
// its HTTP API directly. Both paths filter on the labels containerlab
// attaches to the nodes it creates.
package docker
