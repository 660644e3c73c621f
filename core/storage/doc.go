// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so exports published to a bucket (for example
// by a CI job that uploads the `dist` folder) can be verified in place, without
// downloading the whole export first. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface is read-only: the verifier never mutates an export.
// It can be mocked for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//   - StatObject: Checks for an object without downloading it.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "assets")
package storage
