// Package relay defines the contracts of an in-process, fire-and-forget
// dispatch fabric: the Event payload, the Source and Receiver capabilities
// every stage implements, and the error taxonomy shared by the sub-packages.
//
// Sub-packages:
// - core: dispatcher (worker pool), subscriber registry, options
// - link: processing and aggregating stages, manual injection source
// - chain: single-type linear pipeline builder
//
// Deliveries are scheduled independently; no ordering is guaranteed between
// them and nothing waits for downstream completion.
package relay
