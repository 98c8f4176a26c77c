// Package version reports build information for asyncext binaries.
package version
