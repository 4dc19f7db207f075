// Package printreq serializes label batches into print service request bodies.
//
// Two wire formats are supported and selected per deployment:
//
//   - REST: the PrintMyBarcode attributes document. Each label becomes a
//     {"label": {...}} object whose keys come from a field Mapping, or a
//     single free-text field for older deployments.
//   - GraphQL: the SPrint print mutation. Each label fills a raw JSON layout
//     template whose {barcode}, {name} and {date} placeholders are replaced
//     textually.
//
// Builders are immutable values and perform no I/O; callers hand the
// returned bytes to printsvc for posting.
package printreq
