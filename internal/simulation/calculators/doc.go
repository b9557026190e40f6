// Package calculators provides the cost line calculators of the simulation engine.
//
// Manual calculators price the current process, the automation calculator prices the running
// cost of the automated one. NewEngine wires the three together.
package calculators
