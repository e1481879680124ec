package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hnzhou16/project-cocraft-redesign/internal/ai"
	"github.com/hnzhou16/project-cocraft-redesign/internal/aws"
	"github.com/hnzhou16/project-cocraft-redesign/internal/db"
	"github.com/hnzhou16/project-cocraft-redesign/internal/design"
	"github.com/hnzhou16/project-cocraft-redesign/internal/page"
	"github.com/hnzhou16/project-cocraft-redesign/internal/storage"
)

var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDRroom")

const pngDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUnJvb20="

type fakeGenerator struct {
	mu      sync.Mutex
	results [][]string
	err     error
	inputs  []ai.ImageInput
	// block waits for the request context to end
	block bool
}

func (g *fakeGenerator) GenerateImage(ctx context.Context, input ai.ImageInput) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.inputs = append(g.inputs, input)
	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	if len(g.results) == 0 {
		return []string{}, nil
	}
	next := g.results[0]
	g.results = g.results[1:]
	return next, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inputs)
}

type sentEmail struct {
	template string
	email    string
	data     any
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, templateFile, email string, data any) (int, error) {
	m.sent = append(m.sent, sentEmail{template: templateFile, email: email, data: data})
	if m.err != nil {
		return -1, m.err
	}
	return http.StatusAccepted, nil
}

type fakeArchiver struct {
	uploads []aws.Upload
	err     error
}

func (a *fakeArchiver) Archive(_ context.Context, upload aws.Upload) (string, error) {
	a.uploads = append(a.uploads, upload)
	if a.err != nil {
		return "", a.err
	}
	return aws.ObjectKey(upload.GenerationID, upload.Extension), nil
}

type testApp struct {
	app       *application
	conn      *db.SQLConnection
	generator *fakeGenerator
	handler   http.Handler
}

func newTestApplication(t *testing.T, generator *fakeGenerator) *testApp {
	t.Helper()

	conn, err := db.OpenSQLite(context.Background(), db.SQLConfig{
		DSN:          "file:" + filepath.Join(t.TempDir(), "designs.db") + "?_pragma=busy_timeout(5000)",
		MaxOpenConns: 4,
		MaxIdleTime:  time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	logger := zap.NewNop().Sugar()
	s := storage.NewSQLCollections(conn)

	app := &application{
		config: config{
			env:            "test",
			version:        "test",
			baseURL:        "https://designs.example.com",
			requestTimeout: 10 * time.Second,
			maxUploadBytes: 1 << 20,
			corsOrigins:    []string{"*"},
		},
		storage:  s,
		logger:   logger,
		designer: design.NewDesigner(generator, s, logger),
		pages:    &page.Templator{},
	}

	return &testApp{
		app:       app,
		conn:      conn,
		generator: generator,
		handler:   app.mount(),
	}
}

func (ta *testApp) count(t *testing.T) int {
	t.Helper()

	var n int
	require.NoError(t, ta.conn.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&n))
	return n
}

func (ta *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	return rr
}

func newGenerateRequest(t *testing.T, image []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if image != nil {
		part, err := mw.CreateFormFile("image", "room.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/generate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body errResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func decodeGenerate(t *testing.T, rr *httptest.ResponseRecorder) generateResponse {
	t.Helper()

	var body generateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
