// Package version provides the tokmd tool version.
package version

// Version is the tokmd tool version.
// Can be overridden at build time with:
//
//	go build -ldflags "-X github.com/ingo-eichhorst/tokmd/pkg/version.Version=2.0.1"
var Version = "dev"

// Name is the compile-time constant tool name embedded in every envelope.
const Name = "tokmd"
