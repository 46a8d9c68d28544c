// Package persistence stores snapshots of resolved devices.
//
// Each device is kept in its own YAML file named after its IEEE address.
// A record embeds the device description, so a saved record can be read
// back wherever a plain device snapshot is accepted.
package persistence
