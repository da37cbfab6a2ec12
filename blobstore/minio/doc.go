// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. The official MinIO Go
// client also works against Ceph, SeaweedFS, Garage and other S3-compatible
// services.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "datasets/")
//	local, err := dataset.Stage(ctx, store, "genes.tsv", tmpDir)
//
// Blob reads use ranged GETs. Download streams the whole object.
package minio
