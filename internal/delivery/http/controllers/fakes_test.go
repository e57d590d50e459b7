package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"talkcatalog/internal/delivery/http/helpers"
	"talkcatalog/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func int64Ptr(v int64) *int64 { return &v }

// newRequest builds a request with an optional JSON body and {id} path value.
func newRequest(method, target, body, id string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if id != "" {
		r.SetPathValue("id", id)
	}
	return r
}

// decodeEnvelope decodes the response envelope and, when dest is non-nil, its data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil {
		require.Nil(t, envelope.Error, "success response must have error nil")
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, dest))
	}
	return envelope
}

// fakeSpeakerService implements domain.SpeakerService for handler tests.
type fakeSpeakerService struct {
	err             error
	speaker         *domain.Speaker
	speakers        []*domain.Speaker
	page            *domain.Page[*domain.Speaker]
	summaries       []*domain.SpeakerSummary
	talks           []*domain.Talk
	rows            []*domain.SpeakerTalk
	deleted         int64
	lastID          int64
	lastSort        domain.Sort
	lastPage        domain.PageRequest
	lastFirstName   string
	lastSource      domain.ProjectionSource
	lastTitlePrefix string
	lastCreate      *domain.Speaker
	lastUpdate      domain.SpeakerUpdate
	deleteCalled    bool
	deleteAllCalled bool
}

func (f *fakeSpeakerService) Create(ctx context.Context, s *domain.Speaker) error {
	f.lastCreate = s
	if f.err != nil {
		return f.err
	}
	s.ID = 1
	return nil
}

func (f *fakeSpeakerService) Get(ctx context.Context, id int64) (*domain.Speaker, error) {
	f.lastID = id
	return f.speaker, f.err
}

func (f *fakeSpeakerService) Update(ctx context.Context, id int64, u domain.SpeakerUpdate) (*domain.Speaker, error) {
	f.lastID = id
	f.lastUpdate = u
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Speaker{ID: id, FirstName: u.FirstName, LastName: u.LastName, Age: u.Age}, nil
}

func (f *fakeSpeakerService) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	f.deleteCalled = true
	return f.err
}

func (f *fakeSpeakerService) DeleteAll(ctx context.Context) (int64, error) {
	f.deleteAllCalled = true
	return f.deleted, f.err
}

func (f *fakeSpeakerService) List(ctx context.Context, sort domain.Sort) ([]*domain.Speaker, error) {
	f.lastSort = sort
	return f.speakers, f.err
}

func (f *fakeSpeakerService) ListPage(ctx context.Context, page domain.PageRequest) (*domain.Page[*domain.Speaker], error) {
	f.lastPage = page
	return f.page, f.err
}

func (f *fakeSpeakerService) ListByFirstName(ctx context.Context, firstName string) ([]*domain.SpeakerSummary, error) {
	f.lastFirstName = firstName
	return f.summaries, f.err
}

func (f *fakeSpeakerService) ListTalks(ctx context.Context, id int64) ([]*domain.Talk, error) {
	f.lastID = id
	return f.talks, f.err
}

func (f *fakeSpeakerService) SpeakerTalks(ctx context.Context, id int64, source domain.ProjectionSource) ([]*domain.SpeakerTalk, error) {
	f.lastID = id
	f.lastSource = source
	return f.rows, f.err
}

func (f *fakeSpeakerService) AllSpeakerTalks(ctx context.Context) ([]*domain.SpeakerTalk, error) {
	return f.rows, f.err
}

func (f *fakeSpeakerService) TalkCounts(ctx context.Context, titlePrefix string) ([]*domain.SpeakerTalk, error) {
	f.lastTitlePrefix = titlePrefix
	return f.rows, f.err
}

// fakeTalkService implements domain.TalkService for handler tests.
type fakeTalkService struct {
	err            error
	talk           *domain.Talk
	talks          []*domain.Talk
	deleted        int64
	lastID         int64
	lastTitle      string
	lastPublished  *bool
	lastCreate     *domain.Talk
	lastTutorial   bool
	lastUpdate     domain.TalkUpdate
	lastRoomID     *int64
	functionCalled bool
}

func (f *fakeTalkService) CreateTalk(ctx context.Context, t *domain.Talk) error {
	f.lastCreate = t
	if f.err != nil {
		return f.err
	}
	t.ID = 10
	return nil
}

func (f *fakeTalkService) CreateTutorial(ctx context.Context, t *domain.Talk) error {
	f.lastTutorial = true
	return f.CreateTalk(ctx, t)
}

func (f *fakeTalkService) Get(ctx context.Context, id int64) (*domain.Talk, error) {
	f.lastID = id
	return f.talk, f.err
}

func (f *fakeTalkService) List(ctx context.Context, titleContains string) ([]*domain.Talk, error) {
	f.lastTitle = titleContains
	return f.talks, f.err
}

func (f *fakeTalkService) ListPublished(ctx context.Context, published bool) ([]*domain.Talk, error) {
	f.lastPublished = &published
	return f.talks, f.err
}

func (f *fakeTalkService) ListWithFunction(ctx context.Context) ([]*domain.Talk, error) {
	f.functionCalled = true
	return f.talks, f.err
}

func (f *fakeTalkService) Update(ctx context.Context, id int64, u domain.TalkUpdate) (*domain.Talk, error) {
	f.lastID = id
	f.lastUpdate = u
	return f.talk, f.err
}

func (f *fakeTalkService) AssignRoom(ctx context.Context, talkID int64, roomID *int64) (*domain.Talk, error) {
	f.lastID = talkID
	f.lastRoomID = roomID
	return f.talk, f.err
}

func (f *fakeTalkService) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeTalkService) DeleteAll(ctx context.Context) (int64, error) {
	return f.deleted, f.err
}

// fakeRoomService implements domain.RoomService for handler tests.
type fakeRoomService struct {
	err        error
	room       *domain.Room
	rooms      []*domain.Room
	talks      []*domain.Talk
	deleted    int64
	lastID     int64
	lastCreate *domain.Room
	lastUpdate domain.RoomUpdate
}

func (f *fakeRoomService) Create(ctx context.Context, r *domain.Room) error {
	f.lastCreate = r
	if f.err != nil {
		return f.err
	}
	r.ID = 5
	return nil
}

func (f *fakeRoomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	f.lastID = id
	return f.room, f.err
}

func (f *fakeRoomService) List(ctx context.Context) ([]*domain.Room, error) {
	return f.rooms, f.err
}

func (f *fakeRoomService) ListTalks(ctx context.Context, id int64) ([]*domain.Talk, error) {
	f.lastID = id
	return f.talks, f.err
}

func (f *fakeRoomService) Update(ctx context.Context, id int64, u domain.RoomUpdate) (*domain.Room, error) {
	f.lastID = id
	f.lastUpdate = u
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Room{ID: id, Name: u.Name, Capacity: u.Capacity, Floor: u.Floor}, nil
}

func (f *fakeRoomService) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeRoomService) DeleteAll(ctx context.Context) (int64, error) {
	return f.deleted, f.err
}
