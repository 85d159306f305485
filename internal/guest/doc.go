// Package guest implements the execution boundary between guestctl and
// provisioned machines.
//
// # The contract
//
// A Guest accepts a shell script and returns CommandOutput; a nonzero exit
// is surfaced as *errors.RunError with the command text and captured
// output. Nothing above this boundary knows how the script reaches the
// machine.
//
// # Implementations
//
//   - LocalGuest: /bin/bash on the local host
//   - ContainerGuest: podman/docker exec into a running container
//   - SSHGuest: ssh to a remote host
//   - MockGuest: scripted responses for tests
//
// Guests are not safe for concurrent use by multiple callers; the
// orchestration pipeline serializes operations per guest. Distinct guests
// carry no shared state and may be driven concurrently.
package guest
