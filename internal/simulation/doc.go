// Package simulation computes the financial return of automating invoice processing.
//
// Each monthly cost line is encapsulated in one Calculator and the Engine aggregates the lines
// into savings, payback and ROI. The Engine holds no mutable state once its calculators are
// registered and can be shared between goroutines.
package simulation
