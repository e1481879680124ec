package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(url string) *ImageGenerator {
	ig := NewImageGenerator("r8_test", url, "black-forest-labs/flux-schnell", 5*time.Second)
	ig.pollInterval = time.Millisecond
	return ig
}

func TestGenerateImageSendsPredictionInput(t *testing.T) {
	var got struct {
		Input map[string]any `json:"input"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/models/black-forest-labs/flux-schnell/predictions", r.URL.Path)
		assert.Equal(t, "Bearer r8_test", r.Header.Get("Authorization"))
		assert.Equal(t, "wait", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p1","status":"succeeded","output":["https://replicate.delivery/a.webp"]}`))
	}))
	defer server.Close()

	urls, err := newTestGenerator(server.URL).GenerateImage(context.Background(), ImageInput{
		Prompt:            "interior design, modern style",
		Image:             "data:image/png;base64,AAAA",
		NumOutputs:        1,
		NumInferenceSteps: 4,
		GuidanceScale:     0,
		Seed:              42,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://replicate.delivery/a.webp"}, urls)

	assert.Equal(t, "interior design, modern style", got.Input["prompt"])
	assert.Equal(t, "data:image/png;base64,AAAA", got.Input["image"])
	assert.EqualValues(t, 1, got.Input["num_outputs"])
	assert.EqualValues(t, 4, got.Input["num_inference_steps"])
	assert.EqualValues(t, 42, got.Input["seed"])
	require.Contains(t, got.Input, "guidance_scale")
	assert.EqualValues(t, 0, got.Input["guidance_scale"])
}

func TestGenerateImageOutputShapes(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{"list", `["https://x/1.webp"]`, []string{"https://x/1.webp"}},
		{"single string", `"https://x/1.webp"`, []string{"https://x/1.webp"}},
		{"empty list", `[]`, []string{}},
		{"null", `null`, []string{}},
		{"empty string", `""`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"p1","status":"succeeded","output":` + tt.output + `}`))
			}))
			defer server.Close()

			urls, err := newTestGenerator(server.URL).GenerateImage(context.Background(), ImageInput{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, urls)
		})
	}
}

func TestGenerateImagePollsUntilDone(t *testing.T) {
	var polls atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"id":"p1","status":"processing","urls":{"get":"` + server.URL + `/v1/predictions/p1"}}`))
			return
		}

		assert.Equal(t, "/v1/predictions/p1", r.URL.Path)
		assert.Equal(t, "Bearer r8_test", r.Header.Get("Authorization"))
		if polls.Add(1) < 2 {
			_, _ = w.Write([]byte(`{"id":"p1","status":"processing","urls":{"get":"` + server.URL + `/v1/predictions/p1"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"p1","status":"succeeded","output":["https://x/done.webp"]}`))
	}))
	defer server.Close()

	urls, err := newTestGenerator(server.URL).GenerateImage(context.Background(), ImageInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x/done.webp"}, urls)
	assert.EqualValues(t, 2, polls.Load())
}

func TestGenerateImageFailedPrediction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p1","status":"failed","error":"NSFW content detected"}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateImage(context.Background(), ImageInput{})
	require.ErrorIs(t, err, ErrPredictionFailed)
	assert.Contains(t, err.Error(), "NSFW")
}

func TestGenerateImageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid token."}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateImage(context.Background(), ImageInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid token.")
}

func TestGenerateImageRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p1","status":"starting","urls":{"get":"http://` + r.Host + `/v1/predictions/p1"}}`))
	}))
	defer server.Close()

	ig := newTestGenerator(server.URL)
	ig.pollInterval = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ig.GenerateImage(ctx, ImageInput{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
