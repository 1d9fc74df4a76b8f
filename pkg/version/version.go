// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package version

import "runtime/debug"

// versionString is set at build time:
//
//	go build -ldflags "-X github.com/sommerfeld-io/source2adoc/pkg/version.versionString=v1.2.3"
var versionString = "undefined"

// Version returns the program version. Without a version set at build time the module version
// recorded by go install is used.
func Version() string {
	if versionString != "undefined" {
		return versionString
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return versionString
}
