// Package testutil provides test fixtures and utilities.
//
// Embedded fixtures cover config files (TOML) and preparation plans
// (YAML), with helper functions returning them as typed objects:
//
//	cfg, err := testutil.ValidConfig()
//	bad, err := testutil.InvalidConfig()
//	p, err := testutil.ValidPlan()
//
// NewGuestWithBackends builds a mock guest whose discovery probe reports
// a chosen set of package managers, for tests that exercise the layers
// above discovery.
package testutil
