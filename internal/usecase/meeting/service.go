package meeting

import (
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-copilot/errors"
	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-copilot/internal/domain/repositories"
	"github.com/johnquangdev/meeting-copilot/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-copilot/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-copilot/internal/query"
	"github.com/johnquangdev/meeting-copilot/internal/summarize"
	"github.com/johnquangdev/meeting-copilot/pkg/ai"
	"github.com/johnquangdev/meeting-copilot/pkg/config"
	"github.com/johnquangdev/meeting-copilot/pkg/jobcontext"
)

// TranscriptStore abstracts the object store used for raw transcript
// archival. Nil is a valid value: archival is best effort and skipped
// when no store is configured.
type TranscriptStore interface {
	UploadTranscript(ctx context.Context, objectName, content string) error
	DownloadTranscript(ctx context.Context, objectName string) (string, error)
	DeleteTranscript(ctx context.Context, objectName string) error
}

// AnswerClient generates a free-form answer from a prepared prompt.
type AnswerClient interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates meeting ingestion, summarization and Q&A.
type Service struct {
	meetingRepo repositories.MeetingRepository
	summaryRepo repositories.SummaryRepository
	jobRepo     repositories.JobRepository

	summarizer summarize.Summarizer
	chat       AnswerClient // nil when AI is not configured
	cache      *cache.SummaryCache
	store      TranscriptStore // nil when object storage is not configured

	asmClient *ai.AssemblyAIClient
	asmSDK    *aai.Client

	cfg    *config.Config
	logger *zap.Logger
}

// NewService wires the meeting service. summarizer must never be nil;
// the heuristic path guarantees a summary even with everything else
// unconfigured.
func NewService(
	meetingRepo repositories.MeetingRepository,
	summaryRepo repositories.SummaryRepository,
	jobRepo repositories.JobRepository,
	summarizer summarize.Summarizer,
	chat AnswerClient,
	summaryCache *cache.SummaryCache,
	store TranscriptStore,
	asmClient *ai.AssemblyAIClient,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	var sdk *aai.Client
	if cfg != nil && cfg.Assembly.APIKey != "" {
		sdk = aai.NewClient(cfg.Assembly.APIKey)
	}
	return &Service{
		meetingRepo: meetingRepo,
		summaryRepo: summaryRepo,
		jobRepo:     jobRepo,
		summarizer:  summarizer,
		chat:        chat,
		cache:       summaryCache,
		store:       store,
		asmClient:   asmClient,
		asmSDK:      sdk,
		cfg:         cfg,
		logger:      logger,
	}
}

// CreateMeeting stores a meeting with an inline transcript. The raw
// transcript is archived to object storage when a store is configured.
func (s *Service) CreateMeeting(ctx context.Context, title, transcript string) (*entities.Meeting, error) {
	if strings.TrimSpace(title) == "" {
		title = "Untitled meeting"
	}
	meeting := entities.NewMeeting(title, transcript)

	if s.store != nil && meeting.HasTranscript() {
		objectKey := storage.TranscriptObjectKey(meeting.ID.String())
		if err := s.store.UploadTranscript(ctx, objectKey, transcript); err != nil {
			// Archival failure is not fatal, the transcript lives in the DB too
			s.logger.Warn("⚠️ Failed to archive transcript",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(err),
			)
		} else {
			meeting.ObjectKey = objectKey
		}
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, apperrors.ErrDBQueryFailed("create meeting", err)
	}

	s.logger.Info("📝 Meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("source", string(meeting.Source)),
		zap.Int("transcript_chars", len(meeting.TranscriptText)),
	)
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID.
func (s *Service) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(id.String())
	}
	return meeting, nil
}

// ListMeetings returns a page of meetings, newest first.
func (s *Service) ListMeetings(ctx context.Context, limit, offset int) ([]*entities.Meeting, int64, error) {
	meetings, total, err := s.meetingRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.ErrDBQueryFailed("list meetings", err)
	}
	return meetings, total, nil
}

// DeleteMeeting removes a meeting, its summary and its archived transcript.
func (s *Service) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	meeting, err := s.GetMeeting(ctx, id)
	if err != nil {
		return err
	}

	if s.store != nil && meeting.ObjectKey != "" {
		if err := s.store.DeleteTranscript(ctx, meeting.ObjectKey); err != nil {
			s.logger.Warn("⚠️ Failed to delete archived transcript",
				zap.String("meeting_id", id.String()),
				zap.Error(err),
			)
		}
	}

	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return apperrors.ErrDBQueryFailed("delete meeting", err)
	}
	return nil
}

// Summarize produces (or returns the cached) summary for a stored
// meeting. The summary is cached by transcript content and persisted
// per meeting. force bypasses both cache and persisted summary.
func (s *Service) Summarize(ctx context.Context, meetingID uuid.UUID, force bool) (*entities.MeetingSummary, error) {
	meeting, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.HasTranscript() {
		return nil, apperrors.ErrTranscriptEmpty(meetingID.String())
	}

	if !force {
		if cached, ok := s.cacheGet(ctx, meeting.TranscriptText); ok {
			return cached, nil
		}
		if stored, err := s.summaryRepo.GetByMeetingID(ctx, meetingID); err == nil && stored != nil {
			s.cachePut(ctx, meeting.TranscriptText, stored)
			return stored, nil
		}
	}

	summary, err := s.SummarizeText(ctx, meeting.TranscriptText)
	if err != nil {
		return nil, err
	}

	summary.MeetingID = meetingID
	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, apperrors.ErrDBQueryFailed("save summary", err)
	}
	s.cachePut(ctx, meeting.TranscriptText, summary)

	s.logger.Info("✅ Meeting summarized",
		zap.String("meeting_id", meetingID.String()),
		zap.String("source", string(summary.Source)),
		zap.Int("decisions", len(summary.Decisions)),
		zap.Int("action_items", len(summary.ActionItems)),
		zap.Int("risks", len(summary.Risks)),
	)
	return summary, nil
}

// GetSummary returns the stored summary for a meeting without running
// extraction.
func (s *Service) GetSummary(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	summary, err := s.summaryRepo.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get summary", err)
	}
	if summary == nil {
		return nil, apperrors.ErrSummaryNotFound(meetingID.String())
	}
	return summary, nil
}

// SummarizeText runs the extraction pipeline over raw transcript text
// without touching persistence. Used by the stateless endpoint and the
// CLI. The heuristic fallback means this only fails on context
// cancellation or a blank transcript.
func (s *Service) SummarizeText(ctx context.Context, transcript string) (*entities.MeetingSummary, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, apperrors.ErrTranscriptEmpty("")
	}
	summary, err := s.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return nil, apperrors.ErrAIAnalysisFailed(err)
	}
	return summary, nil
}

// Ask answers a question about a meeting. The answer is always grounded
// in the structured summary: keyword routing picks the relevant fields,
// and when an AI client is configured the summary plus question are sent
// to it for a conversational answer. AI failure degrades to the routed
// rendering, never to an error.
func (s *Service) Ask(ctx context.Context, meetingID uuid.UUID, question string) (string, error) {
	summary, err := s.Summarize(ctx, meetingID, false)
	if err != nil {
		return "", err
	}
	return s.answer(ctx, summary, question), nil
}

// AskText answers a question about raw transcript text without
// persistence, for stateless and CLI use.
func (s *Service) AskText(ctx context.Context, transcript, question string) (string, error) {
	summary, err := s.SummarizeText(ctx, transcript)
	if err != nil {
		return "", err
	}
	return s.answer(ctx, summary, question), nil
}

func (s *Service) answer(ctx context.Context, summary *entities.MeetingSummary, question string) string {
	routed := query.Answer(summary, question)

	if s.chat == nil || s.cfg == nil || !s.cfg.AIEnabled() {
		return routed
	}

	prompt := query.BuildContext(summary, question)
	reply, err := s.chat.Chat(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.logger.Warn("⚠️ AI answer failed, using routed answer", zap.Error(err))
		return routed
	}
	return reply
}

// SubmitTranscription creates an audio meeting and submits the recording
// to AssemblyAI. The transcript arrives later through the webhook.
func (s *Service) SubmitTranscription(ctx context.Context, title, audioURL string) (*entities.Meeting, *entities.ExtractionJob, error) {
	if s.asmClient == nil || !s.asmClient.Configured() {
		return nil, nil, apperrors.ErrAIServiceUnavailable("assemblyai")
	}
	if strings.TrimSpace(audioURL) == "" {
		return nil, nil, apperrors.ErrInvalidArgument("audio_url is required")
	}
	if strings.TrimSpace(title) == "" {
		title = "Untitled meeting"
	}

	meeting := entities.NewAudioMeeting(title)
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("create meeting", err)
	}

	job := entities.NewExtractionJob(meeting.ID, entities.ExtractionJobTypeTranscription, audioURL)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("create job", err)
	}

	webhookURL := ""
	if s.cfg.Assembly.WebhookBaseURL != "" {
		webhookURL = strings.TrimRight(s.cfg.Assembly.WebhookBaseURL, "/") + "/v1/webhooks/assemblyai"
	}

	externalID, err := s.asmClient.TranscribeAudio(ctx, audioURL, webhookURL, s.cfg.Assembly.WebhookSecret, map[string]string{
		"meeting_id": meeting.ID.String(),
		"job_id":     job.ID.String(),
	})
	if err != nil {
		job.MarkFailed(err)
		if uerr := s.jobRepo.Update(ctx, job); uerr != nil {
			s.logger.Error("❌ Failed to persist job failure", zap.Error(uerr))
		}
		return nil, nil, apperrors.ErrTranscriptionFailed(err)
	}

	job.MarkSubmitted(externalID)
	meeting.Status = entities.MeetingStatusTranscribing
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("update job", err)
	}
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("update meeting", err)
	}

	s.logger.Info("🎙️ Transcription submitted",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.String("transcript_id", externalID),
	)
	return meeting, job, nil
}

// HandleTranscriptWebhook processes an AssemblyAI status callback. On
// completion the transcript text is fetched through the SDK, attached
// to the meeting, archived, and summarized.
func (s *Service) HandleTranscriptWebhook(ctx context.Context, transcriptID, status string) error {
	job, err := s.jobRepo.GetByExternalID(ctx, transcriptID)
	if err != nil {
		return apperrors.ErrDBQueryFailed("get job", err)
	}
	if job == nil {
		return apperrors.ErrJobNotFound(transcriptID)
	}
	if job.Status == entities.ExtractionJobStatusCompleted || job.Status == entities.ExtractionJobStatusFailed {
		// Webhook retry for a finished job, nothing to do
		s.logger.Info("ℹ️ Ignoring webhook for finished job",
			zap.String("job_id", job.ID.String()),
			zap.String("status", string(job.Status)),
		)
		return nil
	}

	switch status {
	case "completed":
		jobCtx, cancel := jobcontext.Begin(ctx, job.ID, string(job.JobType))
		defer cancel()
		return s.completeTranscription(jobCtx, job, transcriptID)
	case "error":
		job.MarkFailed(fmt.Errorf("assemblyai transcription failed"))
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return apperrors.ErrDBQueryFailed("update job", err)
		}
		return nil
	default:
		s.logger.Info("⏳ Transcript still processing",
			zap.String("job_id", job.ID.String()),
			zap.String("status", status),
		)
		return nil
	}
}

func (s *Service) completeTranscription(ctx context.Context, job *entities.ExtractionJob, transcriptID string) error {
	if s.asmSDK == nil {
		return apperrors.ErrAIServiceUnavailable("assemblyai")
	}

	transcript, err := s.asmSDK.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return apperrors.ErrTranscriptionFailed(err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		errMsg := "assemblyai transcription failed"
		if transcript.Error != nil {
			errMsg = *transcript.Error
		}
		job.MarkFailed(fmt.Errorf("%s", errMsg))
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return apperrors.ErrDBQueryFailed("update job", err)
		}
		return nil
	}

	text := ""
	if transcript.Text != nil {
		text = *transcript.Text
	}

	meeting, err := s.meetingRepo.GetByID(ctx, job.MeetingID)
	if err != nil {
		return apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return apperrors.ErrMeetingNotFound(job.MeetingID.String())
	}

	meeting.TranscriptText = text
	meeting.Status = entities.MeetingStatusReady
	if s.store != nil && strings.TrimSpace(text) != "" {
		objectKey := storage.TranscriptObjectKey(meeting.ID.String())
		if err := s.store.UploadTranscript(ctx, objectKey, text); err != nil {
			s.logger.Warn("⚠️ Failed to archive transcript",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(err),
			)
		} else {
			meeting.ObjectKey = objectKey
		}
	}
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return apperrors.ErrDBQueryFailed("update meeting", err)
	}

	job.Status = entities.ExtractionJobStatusAnalyzing
	job.Metadata.TranscriptChars = len(text)
	job.Metadata.ProcessingTimeMs = jobcontext.Elapsed(ctx).Milliseconds()
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return apperrors.ErrDBQueryFailed("update job", err)
	}

	if meeting.HasTranscript() {
		if _, err := s.Summarize(ctx, meeting.ID, true); err != nil {
			s.logger.Error("❌ Post-transcription summarization failed",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(err),
			)
			// Transcript is saved, summarization can be retried on demand
		}
	}

	job.MarkCompleted()
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return apperrors.ErrDBQueryFailed("update job", err)
	}

	s.logger.Info("✅ Transcription completed",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.Int("transcript_chars", len(text)),
	)
	return nil
}

func (s *Service) cacheGet(ctx context.Context, transcript string) (*entities.MeetingSummary, bool) {
	if s.cache == nil {
		return nil, false
	}
	summary, ok, err := s.cache.Get(ctx, transcript)
	if err != nil {
		s.logger.Warn("⚠️ Summary cache read failed", zap.Error(err))
		return nil, false
	}
	return summary, ok
}

func (s *Service) cachePut(ctx context.Context, transcript string, summary *entities.MeetingSummary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, transcript, summary); err != nil {
		s.logger.Warn("⚠️ Summary cache write failed", zap.Error(err))
	}
}
