package dispatcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yisselda/translation-service/internal/batcher"
	"github.com/yisselda/translation-service/internal/cache"
	"github.com/yisselda/translation-service/internal/domain"
	"github.com/yisselda/translation-service/internal/engine"
	"github.com/yisselda/translation-service/internal/language"
	mock_engine "github.com/yisselda/translation-service/internal/mocks/engine"
)

var testLanguages = []domain.Language{
	{Code: "en", Name: "English"},
	{Code: "fr", Name: "French"},
	{Code: "ht", Name: "Haitian Creole"},
}

// echo translates every item to "<target>:<text>".
func echo(ctx context.Context, items []engine.Item) ([]string, error) {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.TargetLang + ":" + item.Text
	}
	return out, nil
}

func newTestDispatcher(t *testing.T, eng engine.Engine) *Dispatcher {
	t.Helper()

	b := batcher.New(eng, batcher.Options{MaxSize: 8, MaxWait: 5 * time.Millisecond})
	t.Cleanup(func() {
		_ = b.Close(context.Background())
	})
	return New(language.New(testLanguages), cache.New(cache.Options{}), b, eng, Options{MaxConcurrency: 4})
}

func TestDispatcher_Translate_CachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_engine.NewMockEngine(ctrl)
	eng.EXPECT().Translate(gomock.Any(), []engine.Item{{Text: "Bonjou", SourceLang: "ht", TargetLang: "en"}}).
		Return([]string{"Hello"}, nil).
		Times(1)
	d := newTestDispatcher(t, eng)

	req := domain.TranslationRequest{Text: "Bonjou", SourceLang: "ht", TargetLang: "en"}

	first, err := d.Translate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Hello", first.TranslatedText)
	assert.False(t, first.FromCache)
	assert.Empty(t, first.DetectedSourceLang)

	second, err := d.Translate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.TranslatedText, second.TranslatedText)
}

func TestDispatcher_Translate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.TranslationRequest
		wantErr error
	}{
		{
			name:    "empty text",
			req:     domain.TranslationRequest{Text: "", TargetLang: "en"},
			wantErr: domain.ErrEmptyInput,
		},
		{
			name:    "whitespace only",
			req:     domain.TranslationRequest{Text: " \n\t", SourceLang: "fr", TargetLang: "en"},
			wantErr: domain.ErrEmptyInput,
		},
		{
			name:    "unknown target",
			req:     domain.TranslationRequest{Text: "hello", TargetLang: "xx"},
			wantErr: domain.ErrInvalidLanguage,
		},
		{
			name:    "unknown source",
			req:     domain.TranslationRequest{Text: "hello", SourceLang: "zz", TargetLang: "en"},
			wantErr: domain.ErrInvalidLanguage,
		},
		{
			name:    "missing target",
			req:     domain.TranslationRequest{Text: "hello", SourceLang: "en"},
			wantErr: domain.ErrInvalidLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no expectations: validation never reaches the engine
			eng := mock_engine.NewMockEngine(ctrl)
			d := newTestDispatcher(t, eng)

			res, err := d.Translate(context.Background(), tt.req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDispatcher_Translate_AutoDetect(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_engine.NewMockEngine(ctrl)
	eng.EXPECT().Detect(gomock.Any(), "Bonjou").Return("ht", nil).Times(2)
	eng.EXPECT().Translate(gomock.Any(), gomock.Any()).DoAndReturn(echo).Times(1)
	d := newTestDispatcher(t, eng)

	req := domain.TranslationRequest{Text: "Bonjou", SourceLang: "auto", TargetLang: "en"}

	first, err := d.Translate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "en:Bonjou", first.TranslatedText)
	assert.Equal(t, "ht", first.DetectedSourceLang)
	assert.False(t, first.FromCache)

	req.SourceLang = ""
	second, err := d.Translate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ht", second.DetectedSourceLang)
	assert.True(t, second.FromCache)
}

func TestDispatcher_Translate_DetectionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_engine.NewMockEngine(ctrl)
	eng.EXPECT().Detect(gomock.Any(), gomock.Any()).Return("", errors.New("model offline"))
	d := newTestDispatcher(t, eng)

	_, err := d.Translate(context.Background(), domain.TranslationRequest{Text: "Bonjou", TargetLang: "en"})
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestDispatcher_Translate_SameLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_engine.NewMockEngine(ctrl)
	d := newTestDispatcher(t, eng)

	res, err := d.Translate(context.Background(), domain.TranslationRequest{Text: " Bonjou ", SourceLang: "ht", TargetLang: "HT"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjou", res.TranslatedText)
}

func TestDispatcher_Translate_EngineFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_engine.NewMockEngine(ctrl)
	eng.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(nil, errors.New("model offline")).Times(2)
	d := newTestDispatcher(t, eng)

	req := domain.TranslationRequest{Text: "hello", SourceLang: "en", TargetLang: "fr"}
	_, err := d.Translate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
	assert.True(t, domain.IsRetryable(err))

	// failures are not cached
	_, err = d.Translate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestDispatcher_TranslateBatch_PreservesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_engine.NewMockEngine(ctrl)
	eng.EXPECT().Translate(gomock.Any(), gomock.Any()).DoAndReturn(echo).AnyTimes()
	d := newTestDispatcher(t, eng)

	reqs := []domain.TranslationRequest{
		{Text: "Bonjou", SourceLang: "ht", TargetLang: "en"},
		{Text: "hello", SourceLang: "en", TargetLang: "xx"},
		{Text: "Merci", SourceLang: "fr", TargetLang: "ht"},
		{Text: "", SourceLang: "fr", TargetLang: "en"},
		{Text: "Good morning", SourceLang: "en", TargetLang: "fr"},
	}

	results := d.TranslateBatch(context.Background(), reqs)
	require.Len(t, results, len(reqs))

	require.NoError(t, results[0].Err)
	assert.Equal(t, "en:Bonjou", results[0].Result.TranslatedText)
	assert.ErrorIs(t, results[1].Err, domain.ErrInvalidLanguage)
	assert.Nil(t, results[1].Result)
	require.NoError(t, results[2].Err)
	assert.Equal(t, "ht:Merci", results[2].Result.TranslatedText)
	assert.ErrorIs(t, results[3].Err, domain.ErrEmptyInput)
	require.NoError(t, results[4].Err)
	assert.Equal(t, "fr:Good morning", results[4].Result.TranslatedText)
}

func TestDispatcher_TranslateBatch_IndependentEngineFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_engine.NewMockEngine(ctrl)
	eng.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(nil, errors.New("model offline")).AnyTimes()
	d := newTestDispatcher(t, eng)

	results := d.TranslateBatch(context.Background(), []domain.TranslationRequest{
		{Text: "one", SourceLang: "en", TargetLang: "fr"},
		{Text: "two", SourceLang: "en", TargetLang: "ht"},
		{Text: "three", SourceLang: "fr", TargetLang: "en"},
	})

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Nil(t, r.Result)
		assert.ErrorIs(t, r.Err, domain.ErrEngineUnavailable)
	}
}

func TestDispatcher_TranslateBatch_BoundedConcurrency(t *testing.T) {
	var inflight, peak atomic.Int32
	translator := translatorFunc(func(ctx context.Context, item engine.Item) (string, error) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return item.Text, nil
	})
	d := New(language.New(testLanguages), cache.New(cache.Options{}), translator, nil, Options{MaxConcurrency: 2})

	reqs := make([]domain.TranslationRequest, 10)
	for i := range reqs {
		reqs[i] = domain.TranslationRequest{Text: string(rune('a' + i)), SourceLang: "en", TargetLang: "fr"}
	}
	results := d.TranslateBatch(context.Background(), reqs)

	require.Len(t, results, 10)
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, reqs[i].Text, r.Result.TranslatedText)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDispatcher_ListLanguages(t *testing.T) {
	d := New(language.New(testLanguages), cache.New(cache.Options{}), nil, nil, Options{})

	assert.Equal(t, testLanguages, d.ListLanguages())
}

type translatorFunc func(ctx context.Context, item engine.Item) (string, error)

func (f translatorFunc) Translate(ctx context.Context, item engine.Item) (string, error) {
	return f(ctx, item)
}
