/*
Package metrics wraps the Prometheus collectors driver.Options.Recorder
exposes to a caller: a handful of gauges and counters tracking the outer
loop's progress. Every method is nil-safe so a zero-value *Recorder, or a
caller who never constructs one, costs nothing.
*/
package metrics
