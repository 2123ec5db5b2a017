// Package driving provides interfaces for primary/inbound ports.
//
// These are the operations the outside world (CLI, a conversational
// session) invokes on the core. Services implement them.
package driving
