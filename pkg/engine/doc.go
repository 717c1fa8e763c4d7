// Package engine hosts the shared reactive graph behind mounted
// components: the table mapping qualified names to input signals and
// output registrations.
//
// All graph mutation funnels through Drive, the single-writer entry point
// a transport (or test) uses to push an input value by qualified name.
// Components never call Drive; they bind names through the restricted Host
// capability in package component. When an instance is torn down its names
// are retired: pending recomputation against them is dropped and later
// Drive calls are rejected rather than silently revived.
package engine
