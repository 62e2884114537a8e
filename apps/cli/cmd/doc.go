// Package cmd implements the xunit CLI commands using Cobra.
//
// Available commands:
//   - run: Run suites, optionally re-running when config files change
//   - validate: Check suite markers without constructing or invoking
//   - list: Show the invocation order of suites
//   - config: Print the effective configuration
//   - init: Create a .xunit.yaml listing the registered suites
//   - version: Show xunit version information
//   - completion: Generate shell completion scripts
//
// Exit codes distinguish failed methods, unknown suites, invalid markers or
// configuration, and suites that could not be constructed.
package cmd
