// Package domain contains the core business types for zipsight.
// Types here are pure data and pure functions with no infrastructure
// dependencies: the upload pair, the analysis report, pagination, the
// chart set, and the error taxonomy.
package domain
