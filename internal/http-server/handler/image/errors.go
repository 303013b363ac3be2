package image

const (
	msgNoFilesUploaded  = "No files were uploaded"
	msgTooManyFiles     = "Too many files: at most 20 per request"
	msgFileTooLarge     = "File too large: at most 10 MiB per file"
	msgUnsupportedType  = "Unsupported file type. Use JPEG, PNG, WebP or AVIF."
	msgInvalidRequest   = "Invalid request format"
	msgNoFilesSpecified = "No files specified for processing"
	msgInvalidOptions   = "Invalid processing options"
	msgUploadFailed     = "Failed to process upload"
	msgProcessingFailed = "Failed to process images"
)
