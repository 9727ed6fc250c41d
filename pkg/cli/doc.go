// Package cli provides the csshint command-line interface.
//
// # Overview
//
// This package implements the `csshint` CLI tool for checking stylesheets
// from the terminal and in CI. Arguments that do not name a command are
// treated as paths to check.
//
// # Commands
//
// check: Check files and directories (the default command)
//
//	csshint check \
//		-config .csshintrc \
//		-format github \
//		-max-error 20 \
//		-ignore 'vendor/**' \
//		src/
//
// Check standard input, resolving configuration as if it were a file:
//
//	cat main.css | csshint check -stdin -stdin-filename src/main.css
//
// Re-check files as they change:
//
//	csshint check -watch src/
//
// rules: List available rules and their defaults
//
//	csshint rules -format json
//
// init: Write a .csshintrc holding every default
//
//	csshint init -dir .
//
// serve: Serve the linter over HTTP until interrupted
//
//	csshint serve -addr :8080 -config .csshintrc
//
// version: Print the version
//
//	csshint version
//
// # Exit Codes
//
//   - 0: no issues
//   - 1: at least one diagnostic was reported
//   - 2: usage, configuration or I/O error
//
// # Configuration
//
// Process settings come from CSSHINT_* environment variables (see
// pkg/config). Rule settings come from the nearest .csshintrc file and
// inline directives (see pkg/linter).
//
// # Related Packages
//
//   - pkg/linter: Runs and reports checks
//   - pkg/linter/rules: Built-in rules
//   - pkg/server: HTTP lint service behind serve
//   - pkg/observability: Logging, metrics and tracing
package cli
