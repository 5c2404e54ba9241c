// Package common holds build variables and process-wide helpers shared by the binaries.
package common

// Version is set at build time with -ldflags "-X github.com/ruteri/silo/common.Version=...".
var Version = "dev"

// PackageName namespaces metrics and log tags.
const PackageName = "silo"
