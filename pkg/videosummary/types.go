package videosummary

import (
	"bytes"
	"encoding/json"
)

// Kind is a media kind accepted by the upload endpoint.
type Kind string

const (
	KindMP4 Kind = "mp4"
	KindMP3 Kind = "mp3"
	KindWAV Kind = "wav"
)

// Input is a classified workflow source.
type Input struct {
	// URL is the external URL, or the local path when External is false.
	URL      string
	External bool
	YouTube  bool
	// Kind is set for local files only.
	Kind Kind
}

// UploadTicket pairs a pre-signed PUT URL with the URL the service reads the asset from.
type UploadTicket struct {
	UploadURL string `json:"upload"`
	PublicURL string `json:"url"`
}

// Job is the server-side processing record for one submission.
type Job struct {
	ID            string
	Complete      bool
	FailedReason  string
	TranscriptURL string
	ChapteringURL string
	FinalSummary  json.RawMessage
}

// Result is a successful workflow outcome. When the submission response had
// no job record, Raw holds that response and the other fields are empty.
type Result struct {
	FileID     string
	Transcript json.RawMessage
	Chapters   json.RawMessage
	Summary    json.RawMessage
	Raw        json.RawMessage
}

// IsRaw reports whether the result is an unrecognised submission response.
func (r *Result) IsRaw() bool {
	return r.Raw != nil
}

type resultJSON struct {
	Transcript json.RawMessage `json:"transcript,omitempty"`
	Chapters   json.RawMessage `json:"chapters,omitempty"`
	Summary    json.RawMessage `json:"summary,omitempty"`
	FileID     string          `json:"fileId"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	if r.IsRaw() {
		return r.Raw, nil
	}
	return json.Marshal(resultJSON{
		Transcript: r.Transcript,
		Chapters:   r.Chapters,
		Summary:    r.Summary,
		FileID:     r.FileID,
	})
}

// RequestOption sets optional submission fields
type RequestOption func(*requestOptions)

type requestOptions struct {
	id          string
	callbackURL string
}

// WithID attaches a caller-chosen identifier to the submission
func WithID(id string) RequestOption {
	return func(o *requestOptions) {
		o.id = id
	}
}

// WithCallbackURL asks the service to notify url when the job finishes
func WithCallbackURL(url string) RequestOption {
	return func(o *requestOptions) {
		o.callbackURL = url
	}
}

type submitPayload struct {
	URL         string `json:"url"`
	ExternalURL bool   `json:"external_url"`
	Chapter     *bool  `json:"chapter,omitempty"`
	Summarize   *bool  `json:"summarize,omitempty"`
	ID          string `json:"id,omitempty"`
	Callback    string `json:"callback,omitempty"`
	IsYouTube   bool   `json:"is_youtube,omitempty"`
}

type ticketResponse struct {
	Upload *UploadTicket   `json:"upload"`
	Error  json.RawMessage `json:"error"`
}

type jobRecord struct {
	ID            flexString      `json:"id"`
	Complete      bool            `json:"complete"`
	FailedReason  json.RawMessage `json:"failed_reason"`
	TranscriptURL string          `json:"transcript_url"`
	ChapteringURL string          `json:"chaptering_url"`
	FinalSummary  json.RawMessage `json:"final_summary"`
}

func (r *jobRecord) job() *Job {
	j := &Job{
		ID:            string(r.ID),
		Complete:      r.Complete,
		TranscriptURL: r.TranscriptURL,
		ChapteringURL: r.ChapteringURL,
	}
	if truthy(r.FailedReason) {
		j.FailedReason = rawText(r.FailedReason)
	}
	if present(r.FinalSummary) {
		j.FinalSummary = r.FinalSummary
	}
	return j
}

type jobEnvelope struct {
	File  *jobRecord      `json:"file"`
	Error json.RawMessage `json:"error"`
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// present reports whether a raw field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && string(b) != "null"
}

// truthy treats empty strings, false, zero and empty containers as absent.
func truthy(raw json.RawMessage) bool {
	if !present(raw) {
		return false
	}
	switch string(bytes.TrimSpace(raw)) {
	case `""`, "false", "0", "{}", "[]":
		return false
	}
	return true
}

// rawText unquotes a JSON string and returns other values verbatim.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
