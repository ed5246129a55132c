// Package emit persists finished descriptor documents.
//
// A Sink receives the built document and the session name exactly once per
// session, after the session has ended. The location is derived only from
// the name, so a repeat build with the same name overwrites the previous
// descriptor. Sinks do not retry; any failure is KindWriteFailed.
//
// # Sinks
//
//   - FileSink: Dir/<name><Ext> on the local filesystem
//   - S3Sink: <KeyPrefix><name><Ext> in an S3-compatible bucket
//   - MemorySink: in-process, for previews and tests
package emit
