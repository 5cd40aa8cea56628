package meeting

// CreateMeetingRequest creates a meeting from an inline transcript
type CreateMeetingRequest struct {
	Title      string `json:"title" validate:"omitempty,max=255"`
	Transcript string `json:"transcript" validate:"required"`
}

// SummarizeRequest controls re-summarization of a stored meeting
type SummarizeRequest struct {
	Force bool `json:"force"`
}

// SummarizeTextRequest summarizes raw transcript text without persistence
type SummarizeTextRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// AskRequest asks a question about a stored meeting
type AskRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// AskTextRequest asks a question about raw transcript text
type AskTextRequest struct {
	Transcript string `json:"transcript" validate:"required"`
	Question   string `json:"question" validate:"required,max=2000"`
}

// TranscribeRequest submits an audio recording for transcription
type TranscribeRequest struct {
	Title    string `json:"title" validate:"omitempty,max=255"`
	AudioURL string `json:"audio_url" validate:"required,url"`
}

// ListMeetingsRequest paginates the meeting list
type ListMeetingsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}
