/*
Package observability provides Prometheus instrumentation for the renderer host.

Metrics records render counts and latency, diagnostics by code, the number of schemas
of the last render and document store writes. A nil *Metrics is valid and records nothing,
so callers never need to guard their calls.
*/
package observability
