// Package dataset provides the row sources of an analysis.
//
// A Dataset is an ordered, re-streamable sequence of labelled numeric rows
// plus a header naming its columns. The analysis streams the first dataset
// once and the second dataset once per row of the first, unless it buffers
// the second with Collect.
//
// # TSV files
//
//	genes := dataset.NewTSV(dataset.FileSource("genes.tsv"))
//	gems := dataset.NewTSV(dataset.FileSource("methylation.tsv"), dataset.WithAnnotationColumn())
//
// The first column holds the labels. With WithAnnotationColumn the second
// column is read as the row annotation (e.g. a CpG site id) and is not a
// sample.
//
// # Remote files
//
// Any blobstore.BlobStore can back a dataset. Stage copies an object to a
// local directory once, which avoids refetching it on every pass:
//
//	path, err := dataset.Stage(ctx, store, "gems.tsv", tmpDir)
//	gems := dataset.NewTSV(dataset.FileSource(path))
package dataset
