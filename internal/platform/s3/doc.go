// Package s3 fetches lab topologies from S3-compatible object storage.
//
// Teams that keep shared topology files in MinIO or another S3-style
// store can point labup at an s3://bucket/key URL; the file is
// downloaded to a local temp path before containerlab sees it.
package s3
