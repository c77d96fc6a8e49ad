package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distrifoods/models"
)

type stubSettingsRepo struct {
	settings *models.SystemSettings
	err      error
	calls    int
}

func (r *stubSettingsRepo) Get(ctx context.Context) (*models.SystemSettings, error) {
	r.calls++
	return r.settings, r.err
}

func enabledSettings() *models.SystemSettings {
	return &models.SystemSettings{ID: "main", GeminiAPIKey: "test-key", AIEnabled: true}
}

func newAssistantForTest(apiBaseURL string, settingsRepo *stubSettingsRepo) *AssistantService {
	kv := NewMemoryKVStore()
	store := NewCachedStore(
		NewDataCache(kv, 30*time.Minute),
		&stubProductRepo{products: []models.Product{
			{ID: "p-1", Title: "Cola", Description: "Refreshing drink", Category: "c-1", Price: price(1.5), IsBestSeller: true},
		}},
		&stubCategoryRepo{categories: []models.Category{{ID: "c-1", Name: "Beverages"}}},
		&stubBrandRepo{brands: []models.Brand{{ID: "b-1", Name: "Acme"}}},
	)
	return NewAssistantService(store, settingsRepo, NewDataCache(kv, 5*time.Minute), apiBaseURL)
}

func price(v float64) *float64 {
	return &v
}

// generativeStub fakes the generateContent endpoint, returning the given text
// as the single candidate part
func generativeStub(t *testing.T, reply string, capture *generateRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-goog-api-key"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": reply}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAssistantSearchParsesFencedJSON(t *testing.T) {
	reply := "```json\n{\"type\": \"product\", \"found\": true, \"matchedItem\": \"Cola\", \"confidence\": 95, \"reasoning\": \"exact match\", \"response\": \"We carry Cola.\"}\n```"
	var captured generateRequest
	srv := generativeStub(t, reply, &captured)
	defer srv.Close()

	svc := newAssistantForTest(srv.URL, &stubSettingsRepo{settings: enabledSettings()})

	result, err := svc.Search(context.Background(), "do you have cola?", nil, "")
	require.NoError(t, err)

	assert.Equal(t, "product", result.Type)
	assert.True(t, result.Found)
	assert.Equal(t, "Cola", result.MatchedItem)
	assert.Equal(t, 95, result.Confidence)

	// The prompt carries the inventory and the user's question
	require.Len(t, captured.Contents, 1)
	require.NotEmpty(t, captured.Contents[0].Parts)
	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "\"Cola\"")
	assert.Contains(t, prompt, "Beverages")
	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "$1.50")
	assert.Contains(t, prompt, "do you have cola?")
}

func TestAssistantSearchUnstructuredReplyDegradesToGeneral(t *testing.T) {
	srv := generativeStub(t, "We have many fine beverages in stock.", nil)
	defer srv.Close()

	svc := newAssistantForTest(srv.URL, &stubSettingsRepo{settings: enabledSettings()})

	result, err := svc.Search(context.Background(), "anything to drink?", nil, "")
	require.NoError(t, err)

	assert.Equal(t, "general", result.Type)
	assert.False(t, result.Found)
	assert.Equal(t, "We have many fine beverages in stock.", result.Response)
}

func TestAssistantSearchAttachesImage(t *testing.T) {
	reply := `{"type": "product", "found": false}`
	var captured generateRequest
	srv := generativeStub(t, reply, &captured)
	defer srv.Close()

	svc := newAssistantForTest(srv.URL, &stubSettingsRepo{settings: enabledSettings()})

	_, err := svc.Search(context.Background(), "", []byte("fake-image"), "image/jpeg")
	require.NoError(t, err)

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 2)
	blob := captured.Contents[0].Parts[1].InlineData
	require.NotNil(t, blob)
	assert.Equal(t, "image/jpeg", blob.MimeType)
	assert.NotEmpty(t, blob.Data)
}

func TestAssistantSearchDisabledStates(t *testing.T) {
	tests := []struct {
		name     string
		settings *models.SystemSettings
	}{
		{"no settings row", nil},
		{"toggle off", &models.SystemSettings{GeminiAPIKey: "key", AIEnabled: false}},
		{"missing api key", &models.SystemSettings{AIEnabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAssistantForTest("http://unused.invalid", &stubSettingsRepo{settings: tt.settings})
			_, err := svc.Search(context.Background(), "query", nil, "")
			assert.ErrorIs(t, err, ErrAssistantDisabled)
		})
	}
}

func TestAssistantSearchRequiresQueryOrImage(t *testing.T) {
	svc := newAssistantForTest("http://unused.invalid", &stubSettingsRepo{settings: enabledSettings()})
	_, err := svc.Search(context.Background(), "", nil, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAssistantDisabled)
}

func TestAssistantSearchSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"message": "API key not valid"}}`)
	}))
	defer srv.Close()

	svc := newAssistantForTest(srv.URL, &stubSettingsRepo{settings: enabledSettings()})
	_, err := svc.Search(context.Background(), "query", nil, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestAssistantSettingsAreCached(t *testing.T) {
	srv := generativeStub(t, `{"type": "general", "found": false}`, nil)
	defer srv.Close()

	repo := &stubSettingsRepo{settings: enabledSettings()}
	svc := newAssistantForTest(srv.URL, repo)
	ctx := context.Background()

	_, err := svc.Search(ctx, "first", nil, "")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "second", nil, "")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls, "settings row should be read once within the cache TTL")
}

func TestParseAssistantResultVariants(t *testing.T) {
	plain := parseAssistantResult(`{"type": "brand", "found": true}`)
	assert.Equal(t, "brand", plain.Type)

	fencedBare := parseAssistantResult("```\n{\"type\": \"category\", \"found\": true}\n```")
	assert.Equal(t, "category", fencedBare.Type)

	garbage := parseAssistantResult("sorry, I cannot help with that")
	assert.Equal(t, "general", garbage.Type)
	assert.Equal(t, "AI provided unstructured response", garbage.Reasoning)
}
