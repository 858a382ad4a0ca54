/*
Package ports defines the driven ports (interfaces) of the renderer host.

The renderer itself is a pure function; these interfaces decouple where its output
goes from how it is produced.

# Key Interfaces

  - DocumentStore: persists rendered documents (filesystem, memory or Redis).

RunDocumentStoreContract is a reusable test suite every adapter runs against itself.
*/
package ports
