// Package logging wires up the zap logger used across the project.
//
// The binary calls Setup once during startup with the configured level.
// Libraries obtain named children via GetLogger("component") and never
// configure logging themselves. Messages below warn are written to stdout,
// warn and above to stderr, so operational noise and problems can be
// redirected independently.
package logging
