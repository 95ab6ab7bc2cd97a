//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	notesBox "github.com/2beens/notesbox/internal/notes_box"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func doRequest[T any](s *IntegrationTestSuite, ctx context.Context, method, path, clientIP string, body any) (int, http.Header, envelope[T]) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-Ip", clientIP)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope[T]
	require.NoError(t, json.Unmarshal(respBytes, &env), string(respBytes))
	return resp.StatusCode, resp.Header, env
}

func (s *IntegrationTestSuite) TestNotesBox() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	clientIP := "10.10.0.1"

	status, _, listResp := doRequest[[]notesBox.Note](s, ctx, "GET", "/notes", clientIP, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, listResp.Success)
	assert.NotNil(t, listResp.Data)
	assert.Empty(t, listResp.Data)

	content := gofakeit.Paragraph(1, 3, 10, " ")
	status, _, createResp := doRequest[notesBox.Note](s, ctx, "POST", "/notes", clientIP, map[string]any{
		"content":   content,
		"isPublic":  true,
		"expiresIn": "1h",
	})
	require.Equal(t, http.StatusCreated, status)
	created := createResp.Data
	assert.Equal(t, content, created.Content)
	assert.True(t, created.IsPublic)
	assert.Equal(t, notesBox.ExpiresHour, created.ExpiresIn)

	status, _, getResp := doRequest[notesBox.Note](s, ctx, "GET", "/notes?id="+created.ID, clientIP, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, getResp.Data)

	status, _, updateResp := doRequest[notesBox.Note](s, ctx, "PUT", "/notes?id="+created.ID, clientIP, map[string]any{
		"content": "updated content",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, updateResp.Data.ID)
	assert.Equal(t, created.CreatedAt, updateResp.Data.CreatedAt)
	assert.Greater(t, updateResp.Data.UpdatedAt, created.UpdatedAt)
	assert.Equal(t, "updated content", updateResp.Data.Content)

	status, _, listResp = doRequest[[]notesBox.Note](s, ctx, "GET", "/notes", clientIP, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, listResp.Data, 1)
	assert.Equal(t, updateResp.Data, listResp.Data[0])

	status, _, deleteResp := doRequest[notesBox.DeleteNoteResponse](s, ctx, "DELETE", "/notes?id="+created.ID, clientIP, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Note deleted successfully", deleteResp.Data.Message)

	status, _, notFoundResp := doRequest[any](s, ctx, "GET", "/notes?id="+created.ID, clientIP, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", notFoundResp.Error)
}

func (s *IntegrationTestSuite) TestNotesBox_Validation() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	clientIP := "10.10.0.2"

	status, _, resp := doRequest[any](s, ctx, "POST", "/notes", clientIP, map[string]any{"content": strings.Repeat("x", 1001)})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Content must be at most 1000 characters", resp.Error)

	status, _, resp = doRequest[any](s, ctx, "DELETE", "/notes", clientIP, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ID is required", resp.Error)

	status, _, resp = doRequest[any](s, ctx, "GET", "/notes?id=1234", clientIP, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid note ID", resp.Error)
}

func (s *IntegrationTestSuite) TestNotesBox_RateLimit() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	clientIP := "10.10.0.3"

	for i := 0; i < rateLimitRequests; i++ {
		status, _, _ := doRequest[any](s, ctx, "GET", "/notes", clientIP, nil)
		require.Equal(t, http.StatusOK, status, fmt.Sprintf("request %d", i+1))
	}

	status, header, resp := doRequest[any](s, ctx, "GET", "/notes", clientIP, nil)
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Too many requests", resp.Error)
	assert.Equal(t, "60", header.Get("Retry-After"))

	// another client is not affected
	status, _, _ = doRequest[any](s, ctx, "GET", "/notes", "10.10.0.4", nil)
	assert.Equal(t, http.StatusOK, status)
}
