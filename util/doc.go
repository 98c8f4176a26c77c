// Package util provides small generic helpers shared across asyncext
// packages.
package util
