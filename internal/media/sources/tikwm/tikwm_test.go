package tikwm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cypherbot/internal/retrieve"
)

func serveAPI(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTikwm_StandardQuality(t *testing.T) {
	srv := serveAPI(t, `{"code":0,"data":{"play":"https://cdn.test/sd.mp4","hdplay":"https://cdn.test/hd.mp4","title":"dance","author":{"nickname":"alice"}}}`)

	s := New()
	s.baseURL = srv.URL

	res, err := s.Attempt(context.Background(), "https://vm.tiktok.com/ABC/")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/sd.mp4", res.URL)
	assert.Equal(t, "sd", res.QualityHint)
	assert.Equal(t, retrieve.KindVideo, res.Kind)
	assert.Equal(t, "dance (@alice)", res.Title)
}

func TestTikwm_HDPreferred(t *testing.T) {
	srv := serveAPI(t, `{"code":0,"data":{"play":"https://cdn.test/sd.mp4","hdplay":"https://cdn.test/hd.mp4","title":"dance"}}`)

	s := NewHD()
	s.baseURL = srv.URL

	res, err := s.Attempt(context.Background(), "https://vm.tiktok.com/ABC/")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/hd.mp4", res.URL)
	assert.Equal(t, "hd", res.QualityHint)
}

func TestTikwm_WatermarkedFallback(t *testing.T) {
	srv := serveAPI(t, `{"code":0,"data":{"wmplay":"https://cdn.test/wm.mp4"}}`)

	s := New()
	s.baseURL = srv.URL

	res, err := s.Attempt(context.Background(), "https://vm.tiktok.com/ABC/")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/wm.mp4", res.URL)
	assert.Equal(t, "watermarked", res.QualityHint)
}

func TestTikwm_ErrorCode(t *testing.T) {
	srv := serveAPI(t, `{"code":-1,"data":{}}`)

	s := New()
	s.baseURL = srv.URL

	_, err := s.Attempt(context.Background(), "https://vm.tiktok.com/ABC/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-1")
}

func TestTikwm_NoRendition(t *testing.T) {
	srv := serveAPI(t, `{"code":0,"data":{"title":"empty"}}`)

	s := New()
	s.baseURL = srv.URL

	_, err := s.Attempt(context.Background(), "https://vm.tiktok.com/ABC/")
	require.Error(t, err)
}
