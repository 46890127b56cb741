// Package version reports the binfs build.
//
// Release builds inject Version, Commit and Date through -ldflags; other
// builds fall back to the module version and the VCS stamps in
// debug.ReadBuildInfo. The result backs `binfs --version` and the HTTP
// User-Agent.
package version
