package aura

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readUpload(t *testing.T, r *http.Request) (filename string, data []byte) {
	t.Helper()
	require.NoError(t, r.ParseMultipartForm(32<<20))

	file, header, err := r.FormFile("file")
	require.NoError(t, err, "file must arrive under the fixed multipart field name")
	defer file.Close()

	buf, err := io.ReadAll(file)
	require.NoError(t, err)
	return header.Filename, buf
}

func TestUploadImageParsesDescriptor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/upload/", r.URL.Path)

		name, data := readUpload(t, r)
		assert.Equal(t, "cat.png", name)
		assert.Equal(t, []byte("png-bytes"), data)

		json.NewEncoder(w).Encode(map[string]string{
			"filename":          "abc123.png",
			"original_filename": "cat.png",
			"content_type":      "image/png",
			"file_path":         "/uploads/abc123.png",
			"url":               "http://backend/uploads/abc123.png",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.UploadImage(context.Background(), File{Name: "cat.png", Data: []byte("png-bytes")})
	require.NoError(t, err)
	assert.Equal(t, "http://backend/uploads/abc123.png", result.URL)
	assert.Equal(t, "cat.png", result.OriginalFilename)
	assert.Equal(t, "image/png", result.ContentType)
}

func TestUploadAudioUsesAudioEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"url": "http://backend/uploads/x.mp3"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.UploadAudio(context.Background(), File{Name: "x.mp3", Data: []byte("mp3")})
	require.NoError(t, err)
	assert.Equal(t, "/upload-audio/", gotPath)
	assert.Equal(t, "http://backend/uploads/x.mp3", result.URL)
}

func TestErrorDetailIsPreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "File must be an image"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UploadImage(context.Background(), File{Name: "a", Data: []byte("x")})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "File must be an image", apiErr.Detail)
}

func TestErrorFallsBackToStatusLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UploadImage(context.Background(), File{Name: "a", Data: []byte("x")})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "502")
}

func TestProcessVideoBinaryBecomesEphemeral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-video/", r.URL.Path)
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("processed-clip-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.ProcessVideo(context.Background(), File{Name: "clip.mp4", Data: []byte("raw")})
	require.NoError(t, err)

	assert.True(t, result.Ephemeral())
	assert.Equal(t, []byte("processed-clip-bytes"), result.Data)
	assert.Equal(t, "video/mp4", result.MIME)
	assert.Contains(t, result.URL, "memory://")
}

func TestProcessVideoJSONDescriptor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"filename":     "v.mp4",
			"content_type": "video/mp4",
			"url":          "http://backend/uploads/v.mp4",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.ProcessVideo(context.Background(), File{Name: "clip.mp4", Data: []byte("raw")})
	require.NoError(t, err)

	assert.False(t, result.Ephemeral())
	assert.Equal(t, "http://backend/uploads/v.mp4", result.URL)
}

func TestGenerateMusicUsesDispositionFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-image-music/", r.URL.Path)
		w.Header().Set("Content-Type", "audio/wav")
		w.Header().Set("Content-Disposition", `attachment; filename=generated_music_1.wav`)
		w.Write([]byte("wav-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.GenerateMusic(context.Background(), File{Name: "cat.png", Data: []byte("png")})
	require.NoError(t, err)

	assert.True(t, result.Ephemeral())
	assert.Equal(t, "generated_music_1.wav", result.Filename)
	assert.Equal(t, []byte("wav-bytes"), result.Data)
	assert.Equal(t, "audio/wav", result.MIME)
}

func TestEstimateProcessingTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/estimate-processing-time/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"total_seconds": 42})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	seconds, err := c.EstimateProcessingTime(context.Background(), File{Name: "a.png", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, 42, seconds)
}

func TestEstimateVideoTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/estimate-video-time/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"estimated_time": 20})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	seconds, err := c.EstimateVideoTime(context.Background(), File{Name: "a.mp4", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, 20, seconds)
}

func TestChatSendsCombinedRequest(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"response": "hi", "status": "success"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	reply, err := c.Chat(context.Background(), ChatRequest{
		Message:  "hello",
		ImageURL: "http://backend/uploads/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", reply)
	assert.Equal(t, "hello", got.Message)
	assert.Equal(t, "http://backend/uploads/a.png", got.ImageURL)
	assert.Empty(t, got.AudioURL)
	assert.Empty(t, got.VideoURL)
}

func TestChatOmitsEmptyMediaURLs(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Chat(context.Background(), ChatRequest{Message: "hello"})
	require.NoError(t, err)

	assert.Contains(t, raw, "message")
	assert.NotContains(t, raw, "image_url")
	assert.NotContains(t, raw, "audio_url")
	assert.NotContains(t, raw, "video_url")
}
