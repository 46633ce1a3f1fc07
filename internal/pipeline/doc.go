// Package pipeline translates batches of records: crossrefs are resolved
// first, then every record is translated on a bounded pool of workers.
// Output order always matches input order.
package pipeline
