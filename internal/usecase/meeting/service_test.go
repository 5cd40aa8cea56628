package meeting

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-copilot/errors"
	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-copilot/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-copilot/internal/summarize"
	"github.com/johnquangdev/meeting-copilot/pkg/config"
)

// In-memory fakes for the repository interfaces

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (r *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return r.meetings[id], nil
}

func (r *fakeMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) List(_ context.Context, limit, offset int) ([]*entities.Meeting, int64, error) {
	var out []*entities.Meeting
	for _, m := range r.meetings {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.meetings, id)
	return nil
}

type fakeSummaryRepo struct {
	summaries map[uuid.UUID]*entities.MeetingSummary
	saves     int
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: make(map[uuid.UUID]*entities.MeetingSummary)}
}

func (r *fakeSummaryRepo) Save(_ context.Context, s *entities.MeetingSummary) error {
	r.saves++
	r.summaries[s.MeetingID] = s
	return nil
}

func (r *fakeSummaryRepo) GetByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error) {
	return r.summaries[meetingID], nil
}

func (r *fakeSummaryRepo) DeleteByMeetingID(_ context.Context, meetingID uuid.UUID) error {
	delete(r.summaries, meetingID)
	return nil
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]*entities.ExtractionJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*entities.ExtractionJob)}
}

func (r *fakeJobRepo) Create(_ context.Context, j *entities.ExtractionJob) error {
	r.jobs[j.ID] = j
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.ExtractionJob, error) {
	return r.jobs[id], nil
}

func (r *fakeJobRepo) GetByExternalID(_ context.Context, externalID string) (*entities.ExtractionJob, error) {
	for _, j := range r.jobs {
		if j.ExternalJobID != nil && *j.ExternalJobID == externalID {
			return j, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *entities.ExtractionJob) error {
	r.jobs[j.ID] = j
	return nil
}

// countingSummarizer wraps the heuristic path and counts invocations
type countingSummarizer struct {
	inner summarize.Summarizer
	calls int
}

func (c *countingSummarizer) Summarize(ctx context.Context, transcript string) (*entities.MeetingSummary, error) {
	c.calls++
	return c.inner.Summarize(ctx, transcript)
}

func newTestService(t *testing.T) (*Service, *fakeMeetingRepo, *fakeSummaryRepo, *countingSummarizer) {
	t.Helper()
	meetingRepo := newFakeMeetingRepo()
	summaryRepo := newFakeSummaryRepo()
	jobRepo := newFakeJobRepo()
	counting := &countingSummarizer{inner: summarize.NewHeuristicSummarizer()}
	svc := NewService(
		meetingRepo,
		summaryRepo,
		jobRepo,
		counting,
		nil,
		cache.NewSummaryCache(cache.NewMemoryStore(), 0),
		nil,
		nil,
		&config.Config{},
		zap.NewNop(),
	)
	return svc, meetingRepo, summaryRepo, counting
}

const transcript = `Kickoff for launch planning.
Decision: we ship on Friday.
Action: Sarah will update the runbook.
Risk: staging environment is flaky.`

func TestCreateMeetingReadyWhenTranscriptPresent(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	m, err := svc.CreateMeeting(context.Background(), "Launch sync", transcript)
	if err != nil {
		t.Fatalf("CreateMeeting: %v", err)
	}
	if m.Status != entities.MeetingStatusReady {
		t.Fatalf("status = %q, want ready", m.Status)
	}
	if m.Source != entities.MeetingSourceInline {
		t.Fatalf("source = %q, want inline", m.Source)
	}
}

func TestCreateMeetingDefaultTitle(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	m, err := svc.CreateMeeting(context.Background(), "   ", transcript)
	if err != nil {
		t.Fatalf("CreateMeeting: %v", err)
	}
	if m.Title != "Untitled meeting" {
		t.Fatalf("title = %q, want default", m.Title)
	}
}

func TestSummarizePersistsAndCaches(t *testing.T) {
	svc, _, summaryRepo, counting := newTestService(t)
	ctx := context.Background()

	m, err := svc.CreateMeeting(ctx, "Launch sync", transcript)
	if err != nil {
		t.Fatalf("CreateMeeting: %v", err)
	}

	first, err := svc.Summarize(ctx, m.ID, false)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(first.Decisions) != 1 || first.Decisions[0] != "we ship on Friday." {
		t.Fatalf("decisions = %v", first.Decisions)
	}
	if len(first.Owners) != 1 || first.Owners[0] != "Sarah" {
		t.Fatalf("owners = %v", first.Owners)
	}
	if summaryRepo.saves != 1 {
		t.Fatalf("saves = %d, want 1", summaryRepo.saves)
	}

	// Second call must hit the cache, not the summarizer
	second, err := svc.Summarize(ctx, m.ID, false)
	if err != nil {
		t.Fatalf("Summarize (cached): %v", err)
	}
	if counting.calls != 1 {
		t.Fatalf("summarizer calls = %d, want 1", counting.calls)
	}
	if second.Summary != first.Summary {
		t.Fatalf("cached summary = %q, want %q", second.Summary, first.Summary)
	}
}

func TestSummarizeForceBypassesCache(t *testing.T) {
	svc, _, summaryRepo, counting := newTestService(t)
	ctx := context.Background()

	m, _ := svc.CreateMeeting(ctx, "Launch sync", transcript)
	if _, err := svc.Summarize(ctx, m.ID, false); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if _, err := svc.Summarize(ctx, m.ID, true); err != nil {
		t.Fatalf("Summarize (force): %v", err)
	}
	if counting.calls != 2 {
		t.Fatalf("summarizer calls = %d, want 2", counting.calls)
	}
	if summaryRepo.saves != 2 {
		t.Fatalf("saves = %d, want 2", summaryRepo.saves)
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	svc, meetingRepo, _, _ := newTestService(t)
	ctx := context.Background()

	m := entities.NewAudioMeeting("No transcript yet")
	meetingRepo.meetings[m.ID] = m

	_, err := svc.Summarize(ctx, m.ID, false)
	var appErr apperrors.AppError
	if err == nil {
		t.Fatal("expected error for empty transcript")
	}
	if !asAppError(err, &appErr) || appErr.Code != apperrors.ErrorCode_TRANSCRIPT_EMPTY {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSummarizeMeetingNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Summarize(context.Background(), uuid.New(), false)
	var appErr apperrors.AppError
	if err == nil || !asAppError(err, &appErr) || appErr.Code != apperrors.ErrorCode_MEETING_NOT_FOUND {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetSummaryBeforeAndAfterSummarize(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	m, _ := svc.CreateMeeting(ctx, "Launch sync", transcript)

	_, err := svc.GetSummary(ctx, m.ID)
	var appErr apperrors.AppError
	if err == nil || !asAppError(err, &appErr) || appErr.Code != apperrors.ErrorCode_SUMMARY_NOT_FOUND {
		t.Fatalf("unexpected error before summarize: %v", err)
	}

	if _, err := svc.Summarize(ctx, m.ID, false); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	stored, err := svc.GetSummary(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if stored.MeetingID != m.ID {
		t.Fatalf("meeting_id = %v, want %v", stored.MeetingID, m.ID)
	}
}

func TestAskRoutesByKeyword(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	m, _ := svc.CreateMeeting(ctx, "Launch sync", transcript)

	answer, err := svc.Ask(ctx, m.ID, "what decisions were made?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(answer, "we ship on Friday.") {
		t.Fatalf("answer = %q", answer)
	}
}

func TestAskTextStateless(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	answer, err := svc.AskText(context.Background(), transcript, "any risks?")
	if err != nil {
		t.Fatalf("AskText: %v", err)
	}
	if !strings.Contains(answer, "staging environment is flaky.") {
		t.Fatalf("answer = %q", answer)
	}
}

func TestSubmitTranscriptionUnconfigured(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, _, err := svc.SubmitTranscription(context.Background(), "Audio", "https://example.com/a.mp3")
	var appErr apperrors.AppError
	if err == nil || !asAppError(err, &appErr) || appErr.Code != apperrors.ErrorCode_AI_SERVICE_UNAVAILABLE {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWebhookUnknownTranscript(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.HandleTranscriptWebhook(context.Background(), "tr_missing", "completed")
	var appErr apperrors.AppError
	if err == nil || !asAppError(err, &appErr) || appErr.Code != apperrors.ErrorCode_JOB_NOT_FOUND {
		t.Fatalf("unexpected error: %v", err)
	}
}

func asAppError(err error, target *apperrors.AppError) bool {
	e, ok := err.(apperrors.AppError)
	if ok {
		*target = e
	}
	return ok
}
