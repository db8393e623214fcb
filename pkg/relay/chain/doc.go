// Package chain builds single-type linear pipelines:
//
//	source -> stage 1 -> stage 2 -> ... -> stage n -> terminal
//
// Building is a small state machine: SetSource once, Append any number of
// stages, then Finalize with the result handler. Out-of-order calls fail with
// an error wrapping relay.ErrConfiguration and leave the chain unchanged.
// Build the chain completely before injecting data into its source.
package chain
