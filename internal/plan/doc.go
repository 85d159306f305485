// Package plan loads and runs preparation plans.
//
// A plan is a YAML file naming guests and the packages to put on them.
// The runner prepares each guest independently and concurrently: discover
// the backend, optionally refresh metadata, install, then install debug
// symbols. Every execution is tagged with a ULID so runs can be
// correlated in logs.
package plan
