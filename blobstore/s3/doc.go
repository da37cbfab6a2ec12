// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	ds := dataset.NewTSV(dataset.BlobSource(store, "genes.tsv"))
//
// Blob reads are ranged GETs. Store also implements blobstore.Downloader,
// so dataset.Stage copies whole objects with concurrent part downloads.
package s3
