// Package batch runs polynomial fit jobs described by config.Config, alone
// or many at once on a bounded pool of goroutines.
//
// A job loads or generates its samples, fits them, computes diagnostics and,
// when the Runner has a store, persists the run. Results come back in job
// order regardless of completion order.
package batch
