package notes

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	"github.com/johnquangdev/polyglot-minutes/internal/domain/repositories"
	"github.com/johnquangdev/polyglot-minutes/internal/usecase/actions"
)

type fakeTranscriber struct {
	transcript *entities.Transcript
	err        error
	calls      int
}

func (f *fakeTranscriber) Name() string { return "fake-stt" }

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string, _ []byte) (*entities.Transcript, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.transcript, nil
}

type fakeSummarizer struct {
	lang string
	err  error
}

func (f *fakeSummarizer) Name() string { return "fake-llm" }

func (f *fakeSummarizer) Summarize(_ context.Context, _ string, targetLang string) (*entities.Summary, error) {
	f.lang = targetLang
	if f.err != nil {
		return nil, f.err
	}
	return &entities.Summary{Short: []string{"point"}, Detailed: "details"}, nil
}

type fakeCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string]string
	err     error
}

func (f *fakeStore) UploadBytes(_ context.Context, objectName string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = map[string]string{}
	}
	f.objects[objectName] = contentType
	return nil
}

type fakeRepo struct {
	items map[uuid.UUID]*entities.MeetingNotes
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[uuid.UUID]*entities.MeetingNotes{}}
}

func (f *fakeRepo) Create(_ context.Context, n *entities.MeetingNotes) error {
	if f.err != nil {
		return f.err
	}
	f.items[n.ID] = n
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingNotes, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items[id], nil
}

func (f *fakeRepo) List(_ context.Context, limit, offset int) ([]*entities.MeetingNotes, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]*entities.MeetingNotes, 0, len(f.items))
	for _, n := range f.items {
		out = append(out, n)
	}
	return out, int64(len(f.items)), nil
}

type fakeRecorder struct {
	cache       []string
	extractions int
	fallbacks   int
	provider    []string
}

func (f *fakeRecorder) ObserveActions(_ []entities.ActionItem, fallback bool) {
	f.extractions++
	if fallback {
		f.fallbacks++
	}
}

func (f *fakeRecorder) ObserveProvider(provider, op string, _ time.Time, _ error) {
	f.provider = append(f.provider, provider+":"+op)
}

func (f *fakeRecorder) ObserveCache(result string) {
	f.cache = append(f.cache, result)
}

const meetingTranscript = "We need to finalize the budget by Friday. " +
	"Please send the quarterly report to finance."

type testDeps struct {
	repo  *fakeRepo
	cache *fakeCache
	store *fakeStore
	rec   *fakeRecorder
}

func newTestService(t *testing.T, deps testDeps) (Service, *fakeTranscriber, *fakeSummarizer) {
	t.Helper()
	tr := &fakeTranscriber{transcript: &entities.Transcript{Text: meetingTranscript, Language: "en"}}
	sm := &fakeSummarizer{}

	var (
		repo  repositories.NotesRepository
		cache Cache
		store ObjectStore
		rec   Recorder
	)
	if deps.repo != nil {
		repo = deps.repo
	}
	if deps.cache != nil {
		cache = deps.cache
	}
	if deps.store != nil {
		store = deps.store
	}
	if deps.rec != nil {
		rec = deps.rec
	}

	return NewService(tr, sm, actions.NewExtractor(), repo, cache, store, rec, time.Minute, nil), tr, sm
}

func TestTranscribe(t *testing.T) {
	svc, tr, _ := newTestService(t, testDeps{})

	got, err := svc.Transcribe(context.Background(), "call.wav", []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, meetingTranscript, got.Text)
	assert.NotNil(t, got.Segments)
	assert.Equal(t, 1, tr.calls)
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	svc, tr, _ := newTestService(t, testDeps{})

	_, err := svc.Transcribe(context.Background(), "call.wav", nil)
	assert.ErrorIs(t, err, entities.ErrEmptyAudio)
	assert.Zero(t, tr.calls)
}

func TestTranscribe_ProviderError(t *testing.T) {
	svc, tr, _ := newTestService(t, testDeps{})
	upstream := stdErrors.New("upstream 503")
	tr.err = upstream

	_, err := svc.Transcribe(context.Background(), "call.wav", []byte("x"))
	assert.ErrorIs(t, err, entities.ErrTranscriptionFailed)
	assert.ErrorIs(t, err, upstream)
}

func TestSummarize_DefaultsLanguage(t *testing.T) {
	svc, _, sm := newTestService(t, testDeps{})

	got, err := svc.Summarize(context.Background(), meetingTranscript, "  ")
	require.NoError(t, err)
	assert.Equal(t, DefaultTargetLanguage, sm.lang)
	assert.Equal(t, []string{"point"}, got.Short)

	_, err = svc.Summarize(context.Background(), meetingTranscript, "HI")
	require.NoError(t, err)
	assert.Equal(t, "hi", sm.lang)
}

func TestSummarize_ProviderError(t *testing.T) {
	svc, _, sm := newTestService(t, testDeps{})
	sm.err = stdErrors.New("rate limited")

	_, err := svc.Summarize(context.Background(), meetingTranscript, "en")
	assert.ErrorIs(t, err, entities.ErrSummaryFailed)
}

func TestExtractActions_NoCache(t *testing.T) {
	svc, _, _ := newTestService(t, testDeps{})

	got := svc.ExtractActions(context.Background(), meetingTranscript)
	assert.Equal(t, actions.Extract(meetingTranscript), got)
}

func TestExtractActions_CachesResult(t *testing.T) {
	cache := newFakeCache()
	rec := &fakeRecorder{}
	svc, _, _ := newTestService(t, testDeps{cache: cache, rec: rec})
	ctx := context.Background()

	first := svc.ExtractActions(ctx, meetingTranscript)
	require.Len(t, cache.data, 1)

	raw, ok := cache.data[actionsCacheKey(meetingTranscript)]
	require.True(t, ok)
	var stored []entities.ActionItem
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, first, stored)

	second := svc.ExtractActions(ctx, meetingTranscript)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, []string{"miss", "hit"}, rec.cache)
	assert.Equal(t, 2, rec.extractions)
}

func TestExtractActions_CachedFallbackIsCounted(t *testing.T) {
	cache := newFakeCache()
	rec := &fakeRecorder{}
	svc, _, _ := newTestService(t, testDeps{cache: cache, rec: rec})
	ctx := context.Background()

	svc.ExtractActions(ctx, "Nothing to do here.")
	svc.ExtractActions(ctx, "Nothing to do here.")

	assert.Equal(t, []string{"miss", "hit"}, rec.cache)
	assert.Equal(t, 2, rec.fallbacks)
}

func TestTranscribe_NilTranscript(t *testing.T) {
	svc, tr, _ := newTestService(t, testDeps{})
	tr.transcript = nil

	got, err := svc.Transcribe(context.Background(), "call.mp3", []byte("audio"))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, entities.ErrTranscriptionFailed)
}

func TestGenerateNotes_NilTranscript(t *testing.T) {
	repo := newFakeRepo()
	svc, tr, _ := newTestService(t, testDeps{repo: repo})
	tr.transcript = nil

	got, err := svc.GenerateNotes(context.Background(), "call.mp3", []byte("audio"), "en")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, entities.ErrTranscriptionFailed)
	assert.Empty(t, repo.items)
}

func TestExtractActions_CacheFailuresAreIgnored(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = stdErrors.New("redis down")
	cache.setErr = stdErrors.New("redis down")
	rec := &fakeRecorder{}
	svc, _, _ := newTestService(t, testDeps{cache: cache, rec: rec})

	got := svc.ExtractActions(context.Background(), meetingTranscript)
	assert.Equal(t, actions.Extract(meetingTranscript), got)
	assert.Equal(t, []string{"error"}, rec.cache)
}

func TestExtractActions_MalformedCacheEntry(t *testing.T) {
	cache := newFakeCache()
	cache.data[actionsCacheKey("")] = "not json"
	rec := &fakeRecorder{}
	svc, _, _ := newTestService(t, testDeps{cache: cache, rec: rec})

	got := svc.ExtractActions(context.Background(), "")
	assert.Equal(t, []entities.ActionItem{entities.FallbackActionItem()}, got)
	assert.Equal(t, 1, rec.fallbacks)
}

func TestGenerateNotes(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc, _, sm := newTestService(t, testDeps{repo: repo, cache: newFakeCache(), store: store, rec: &fakeRecorder{}})

	n, err := svc.GenerateNotes(context.Background(), "uploads/Team Sync.MP3", []byte("ID3"), "")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, "en", sm.lang)
	assert.Equal(t, "en", n.TargetLanguage)
	assert.Equal(t, meetingTranscript, n.Transcript)
	assert.Equal(t, "details", n.SummaryDetailed)
	assert.Equal(t, actions.Extract(meetingTranscript), []entities.ActionItem(n.Actions))

	assert.Same(t, n, repo.items[n.ID])

	wantAudio := "audio/" + n.ID.String() + "/Team Sync.MP3"
	assert.Equal(t, wantAudio, n.AudioObject)
	assert.Equal(t, "audio/mpeg", store.objects[wantAudio])
	assert.Equal(t, "application/json", store.objects["notes/"+n.ID.String()+"/"+ExportFilename])
}

func TestGenerateNotes_BestEffortSideEffects(t *testing.T) {
	repo := newFakeRepo()
	repo.err = stdErrors.New("db down")
	store := &fakeStore{err: stdErrors.New("minio down")}
	svc, _, _ := newTestService(t, testDeps{repo: repo, store: store})

	n, err := svc.GenerateNotes(context.Background(), "a.wav", []byte("RIFF"), "fr")
	require.NoError(t, err)
	assert.Empty(t, n.AudioObject)
	assert.Equal(t, "fr", n.TargetLanguage)
}

func TestGenerateNotes_TranscriptionFails(t *testing.T) {
	repo := newFakeRepo()
	svc, tr, _ := newTestService(t, testDeps{repo: repo})
	tr.err = stdErrors.New("boom")

	_, err := svc.GenerateNotes(context.Background(), "a.wav", []byte("RIFF"), "en")
	assert.ErrorIs(t, err, entities.ErrTranscriptionFailed)
	assert.Empty(t, repo.items)
}

func TestGetNotes(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newTestService(t, testDeps{repo: repo})
	ctx := context.Background()

	n, err := svc.GenerateNotes(ctx, "a.wav", []byte("RIFF"), "en")
	require.NoError(t, err)

	got, err := svc.GetNotes(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	_, err = svc.GetNotes(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrNotesNotFound)
}

func TestGetNotes_NoStore(t *testing.T) {
	svc, _, _ := newTestService(t, testDeps{})

	_, err := svc.GetNotes(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrNotesStoreAbsent)

	_, _, err = svc.ListNotes(context.Background(), 10, 0)
	assert.ErrorIs(t, err, entities.ErrNotesStoreAbsent)
}

func TestExportNotes(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newTestService(t, testDeps{repo: repo})
	ctx := context.Background()

	n, err := svc.GenerateNotes(ctx, "a.wav", []byte("RIFF"), "en")
	require.NoError(t, err)

	payload, err := svc.ExportNotes(ctx, n.ID)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "\n  \"id\": \""+n.ID.String()+"\"")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, meetingTranscript, decoded["transcript"])
	assert.Contains(t, decoded, "summary_short")
	assert.Contains(t, decoded, "actions")
}

func TestListNotes(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newTestService(t, testDeps{repo: repo})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.GenerateNotes(ctx, "a.wav", []byte("RIFF"), "en")
		require.NoError(t, err)
	}

	items, total, err := svc.ListNotes(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.EqualValues(t, 3, total)
}

func TestAudioHelpers(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	assert.Equal(t, "audio/"+id.String()+"/rec.wav", audioObjectName(id, `C:\Users\me\rec.wav`))
	assert.Equal(t, "audio/"+id.String()+"/audio", audioObjectName(id, ""))
	assert.Equal(t, "audio/wav", audioContentType("x.WAV"))
	assert.Equal(t, "application/octet-stream", audioContentType("x.txt"))

	assert.True(t, IsSupportedAudio("meeting.M4A"))
	assert.False(t, IsSupportedAudio("meeting.txt"))
	assert.Equal(t, []string{".flac", ".m4a", ".mp3", ".ogg", ".wav", ".webm"}, SupportedAudioExtensions())
}
