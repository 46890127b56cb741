// Package store moves the binfs document to and from where it is kept.
//
// A Store only ever sees the complete serialised document. Three backends
// exist:
//
//   - JSONBin: an HTTP bin read with GET and replaced with PUT, authenticated
//     by the X-Master-Key header (and X-Access-Key when configured). Requests
//     go through resty over a retryablehttp transport.
//   - S3: a single object in an S3-compatible bucket.
//   - File: a local JSON file, replaced atomically on push.
//
// Load and Save wrap a Store with the document codec, so the sentinel entry
// is added and stripped at the edge and never reaches the shell.
package store
