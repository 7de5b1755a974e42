// Package profile defines the declarative configuration for one kat
// subcommand, and the registry that discovers profiles from the user's
// configuration directory.
package profile
