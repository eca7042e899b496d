// Package minio provides a snapshot.Persister that keeps the record document
// as a single object in MinIO or any S3-compatible storage.
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
//	p := miniosnap.New(client, "vectors", "persisted_vectors.json")
//	s, err := store.New(ctx, p, store.WithCreateIfMissing())
//
// Each Save uploads the full document with one PutObject call, so readers see
// either the previous or the new object.
package minio
