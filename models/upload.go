package models

// UploadArtifact describes a file stored in object storage together with
// the time-limited URL granting access to it. The object itself is owned
// by the external store; this descriptor only brokers its location.
type UploadArtifact struct {
	// URL is the presigned, time-limited link to the stored object.
	URL string `json:"url"`

	// FileKey is the object-storage key the file was stored under
	// (folder/timestamp_suffix.ext).
	FileKey string `json:"file_key"`

	// OriginalFilename is the name of the file as uploaded by the client.
	OriginalFilename string `json:"original_filename"`

	// ContentType is the MIME type declared for the file.
	ContentType string `json:"content_type"`

	// FileSize is the size of the stored object in bytes.
	FileSize int64 `json:"file_size"`

	// Bucket is the name of the bucket owning the object.
	Bucket string `json:"bucket_name"`

	// ExpiresIn is the lifetime of URL in seconds.
	ExpiresIn int64 `json:"expires_in"`
}
