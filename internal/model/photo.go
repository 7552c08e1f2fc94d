package model

// PhotoUploadState is the upload lifecycle of an attached photo.
type PhotoUploadState string

const (
	PhotoStateNotUploaded PhotoUploadState = "not_uploaded"
	PhotoStateUploading   PhotoUploadState = "uploading"
	PhotoStateUploaded    PhotoUploadState = "uploaded"
	PhotoStateError       PhotoUploadState = "error"
)

// PhotoForUpload is a photo attached to an order. PhotoID is generated
// client-side and acts as the idempotency key for upload retries, so a
// retried upload never produces a duplicate on the backend.
type PhotoForUpload struct {
	PhotoID         string           `json:"photo_id"`
	OrderID         string           `json:"order_id"`
	FilePath        string           `json:"file_path,omitempty"`
	Base64Thumbnail string           `json:"base64_thumbnail,omitempty"`
	State           PhotoUploadState `json:"state"`
}
