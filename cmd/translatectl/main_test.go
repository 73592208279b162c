package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yisselda/translation-service/internal/domain"
	"github.com/yisselda/translation-service/internal/handler"
	"github.com/yisselda/translation-service/internal/language"
)

type fakeService struct {
	result *domain.TranslationResult
	err    error
}

func (s fakeService) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	return s.result, s.err
}

func (s fakeService) TranslateBatch(ctx context.Context, reqs []domain.TranslationRequest) []domain.BatchItemResult {
	out := make([]domain.BatchItemResult, len(reqs))
	for i, req := range reqs {
		if req.TargetLang == "xx" {
			out[i] = domain.BatchItemResult{Err: domain.ErrInvalidLanguage}
			continue
		}
		out[i] = domain.BatchItemResult{Result: &domain.TranslationResult{TranslatedText: strings.ToUpper(req.Text)}}
	}
	return out
}

func (s fakeService) ListLanguages() []domain.Language {
	return nil
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "translatectl", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"translate", "batch", "languages"}, names)
}

func TestNewTranslateCommand(t *testing.T) {
	cmd := newTranslateCommand()

	from := cmd.Flags().Lookup("from")
	require.NotNil(t, from)
	assert.Equal(t, "auto", from.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("to"))
}

func TestRunTranslate(t *testing.T) {
	tests := []struct {
		name    string
		svc     fakeService
		wantOut string
		wantErr string
		wantLog string
	}{
		{
			name:    "translated",
			svc:     fakeService{result: &domain.TranslationResult{TranslatedText: "Hello"}},
			wantOut: "Hello\n",
		},
		{
			name:    "detected and cached",
			svc:     fakeService{result: &domain.TranslationResult{TranslatedText: "Hello", DetectedSourceLang: "ht", FromCache: true}},
			wantOut: "Hello\n",
			wantLog: "(detected ht, cached)",
		},
		{
			name:    "invalid language",
			svc:     fakeService{err: domain.ErrInvalidLanguage},
			wantErr: "invalid_language: invalid language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			err := runTranslate(context.Background(), tt.svc, &out, &errOut, domain.TranslationRequest{Text: "Bonjou", TargetLang: "en"})
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out.String())
			assert.Contains(t, errOut.String(), tt.wantLog)
		})
	}
}

func TestReadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"text":"Bonjou","source_lang":"ht","target_lang":"en"}]`), 0o600))

	items, err := readBatch(nil, path)
	require.NoError(t, err)
	assert.Equal(t, []domain.TranslationRequest{{Text: "Bonjou", SourceLang: "ht", TargetLang: "en"}}, items)

	items, err = readBatch(strings.NewReader(`[]`), "-")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = readBatch(strings.NewReader(`{"text":"x"}`), "-")
	assert.ErrorContains(t, err, "invalid batch file")

	_, err = readBatch(nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	h := handler.New(fakeService{}, nil)

	var out, errOut bytes.Buffer
	err := runBatch(context.Background(), h, &out, &errOut, []domain.TranslationRequest{
		{Text: "hello", SourceLang: "en", TargetLang: "fr"},
		{Text: "hello", SourceLang: "en", TargetLang: "xx"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[
		{"translated_text":"HELLO","from_cache":false},
		{"error":"invalid language","code":"invalid_language"}
	]}`, out.String())
	assert.Contains(t, errOut.String(), "1 of 2 items failed")
}

func TestRunBatch_TooManyItems(t *testing.T) {
	h := handler.New(fakeService{}, nil)

	err := runBatch(context.Background(), h, &bytes.Buffer{}, &bytes.Buffer{}, make([]domain.TranslationRequest, handler.MaxBatchItems+1))
	assert.ErrorContains(t, err, "invalid_request")
}

func TestRunLanguages(t *testing.T) {
	registry := language.New([]domain.Language{
		{Code: "ht", Name: "Haitian Creole"},
		{Code: "en", Name: "English"},
	})

	var out bytes.Buffer
	require.NoError(t, runLanguages(registry, &out))
	assert.Equal(t, "en  English\nht  Haitian Creole\n", out.String())
}

func TestRunTranslate_WrapsEngineError(t *testing.T) {
	err := runTranslate(context.Background(), fakeService{err: fmt.Errorf("%w: timeout", domain.ErrEngineUnavailable)}, &bytes.Buffer{}, &bytes.Buffer{}, domain.TranslationRequest{})
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}
