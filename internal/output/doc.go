// Package output produces the serialized report artifacts. Encoding is
// deterministic: stable key ordering, normalized float formatting, and
// explicit nulls for "no data" fields, so re-running the pipeline on an
// unchanged snapshot yields byte-identical files.
package output
