package videosummary

import "fmt"

// ConfigurationError reports unusable credentials at construction.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "videosummary: configuration error: " + e.Reason
}

// NotFoundError reports a local path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("videosummary: file does not exist: %s", e.Path)
}

// UnsupportedKindError reports a local file whose type is not mp4, mp3 or wav.
type UnsupportedKindError struct {
	Path        string
	ContentType string
}

func (e *UnsupportedKindError) Error() string {
	if e.ContentType == "" {
		return fmt.Sprintf("videosummary: unsupported media type for %s", e.Path)
	}
	return fmt.Sprintf("videosummary: unsupported media type %q for %s", e.ContentType, e.Path)
}

// UploadError reports a failed upload ticket request or asset PUT.
type UploadError struct {
	Kind       Kind
	StatusCode int
	Reason     string
	Err        error
}

func (e *UploadError) Error() string {
	msg := "videosummary: upload failed"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response from the service.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("videosummary: HTTP error! status=%d %s %s", e.StatusCode, e.Method, e.URL)
}

// JobFailedError reports a job the service marked as failed.
type JobFailedError struct {
	FileID string
	Reason string
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("videosummary: job %s failed: %s", e.FileID, e.Reason)
}
