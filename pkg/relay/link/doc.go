// Package link provides the pipeline nodes: Stage (one input, one output),
// Aggregator (collects a group of inputs before producing one output) and
// Manual (pushes values into a pipeline from outside).
//
// Common usage:
// - Map/Try/Tee/Filter: build a Stage from a function
// - From: build a Stage from a Transformer implementation
// - NewAggregator/Collect/Reduce: fan-in with an explicit or inferred threshold
// - NewManual: entry point fed by Inject
//
// A transform runs synchronously on the goroutine that delivered its input;
// its output is then dispatched to every subscriber independently.
package link
