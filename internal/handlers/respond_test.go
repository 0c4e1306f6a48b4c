package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanguard-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		kind error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrValidation, http.StatusBadRequest},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{services.ErrUnavailable, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		err := &services.Error{Kind: tc.kind, Message: "msg"}
		assert.Equal(t, tc.want, statusFor(err), tc.kind.Error())
	}
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("wrapped: %w", services.ErrNotFound)))
}

func TestRespondServiceError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/employees/P001", nil)

	w := httptest.NewRecorder()
	respondServiceError(w, r, &services.Error{Kind: services.ErrNotFound, Message: "employee P001 not found"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"employee P001 not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	respondServiceError(w, r, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/logs?limit=50&bad=x", nil)
	assert.Equal(t, 50, queryInt(r, "limit", 10))
	assert.Equal(t, 10, queryInt(r, "bad", 10))
	assert.Equal(t, 7, queryInt(r, "missing", 7))
}

func TestDecodeJSON_Invalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/processes", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()

	var dst map[string]interface{}
	assert.False(t, decodeJSON(w, r, &dst))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadUpload(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "employees.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("工号,姓名\nP001,张三\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/employees/import", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	name, data, ok := readUpload(w, r)
	require.True(t, ok)
	assert.Equal(t, "employees.csv", name)
	assert.Contains(t, string(data), "P001")
}

func TestReadUpload_MissingFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "x"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/employees/import", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	_, _, ok := readUpload(w, r)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "file is required", resp["error"])
}
