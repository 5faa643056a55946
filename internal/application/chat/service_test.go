package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swipe-api/internal/domain"
)

type mockMatchStore struct{ mock.Mock }

func (m *mockMatchStore) GetByID(ctx context.Context, matchID string) (*domain.Match, error) {
	args := m.Called(ctx, matchID)
	if mt, _ := args.Get(0).(*domain.Match); mt != nil {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeMessageLog mirrors the repo's append semantics in memory: assign the
// next gapless seq under a lock.
type fakeMessageLog struct {
	mu   sync.Mutex
	msgs map[string][]domain.Message
}

func newFakeMessageLog() *fakeMessageLog {
	return &fakeMessageLog{msgs: map[string][]domain.Message{}}
}

func (f *fakeMessageLog) Append(_ context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.Seq = int64(len(f.msgs[m.MatchID])) + 1
	f.msgs[m.MatchID] = append(f.msgs[m.MatchID], *m)
	return nil
}

func (f *fakeMessageLog) List(_ context.Context, matchID string, sinceSeq int64) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Message
	for _, m := range f.msgs[matchID] {
		if m.Seq > sinceSeq {
			out = append(out, m)
		}
	}
	return out, nil
}

func matchAB() *domain.Match {
	return &domain.Match{PairID: "a#b", MatchID: "m1", ProfileA: "a", ProfileB: "b"}
}

func newChat(t *testing.T, log *fakeMessageLog) Service {
	t.Helper()
	ms := &mockMatchStore{}
	ms.On("GetByID", mock.Anything, "m1").Return(matchAB(), nil)
	ms.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	return NewService(ServiceDeps{MatchRepo: ms, MessageRepo: log})
}

func TestSend_UnknownMatch_NotFound(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())
	_, err := svc.Send(context.Background(), "ghost", "a", "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSend_NonParticipant_Forbidden(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())
	_, err := svc.Send(context.Background(), "m1", "stranger", "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestSend_BlankText_BadRequest(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())
	_, err := svc.Send(context.Background(), "m1", "a", "   \n\t ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSend_TrimsAndAssignsSequence(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())

	m1, err := svc.Send(context.Background(), "m1", "a", "  hi  ")
	require.NoError(t, err)
	m2, err := svc.Send(context.Background(), "m1", "b", "hey")
	require.NoError(t, err)

	assert.Equal(t, "hi", m1.Text)
	assert.Equal(t, int64(1), m1.Seq)
	assert.Equal(t, int64(2), m2.Seq)
	assert.NotEmpty(t, m1.MessageID)
}

func TestList_ReflectsEveryPriorSend(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())

	sent, err := svc.Send(context.Background(), "m1", "a", "hi")
	require.NoError(t, err)

	got, err := svc.List(context.Background(), "m1", "b", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Text)
	assert.Equal(t, "a", got[0].SenderID)
	assert.Equal(t, sent.Seq, got[0].Seq)
}

func TestList_SinceReturnsStrictSuffix(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Send(context.Background(), "m1", "a", text)
		require.NoError(t, err)
	}

	got, err := svc.List(context.Background(), "m1", "b", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Text)
	assert.Equal(t, "three", got[1].Text)

	empty, err := svc.List(context.Background(), "m1", "b", 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestList_AscendingOrderEqualsAppendOrder(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())

	texts := []string{"1", "2", "3", "4", "5"}
	for _, text := range texts {
		_, err := svc.Send(context.Background(), "m1", "a", text)
		require.NoError(t, err)
	}

	got, err := svc.List(context.Background(), "m1", "a", 0)
	require.NoError(t, err)
	require.Len(t, got, len(texts))
	for i, m := range got {
		assert.Equal(t, int64(i+1), m.Seq)
		assert.Equal(t, texts[i], m.Text)
	}
}

func TestList_NonParticipant_Forbidden(t *testing.T) {
	svc := newChat(t, newFakeMessageLog())
	_, err := svc.List(context.Background(), "m1", "stranger", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
