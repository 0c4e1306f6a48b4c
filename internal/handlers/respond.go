package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/pkg/utils"
)

const maxUploadBytes = 10 << 20

// statusFor maps a service error kind to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondServiceError writes the service message, or a generic one for
// unexpected errors which are logged instead
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLog(r.Context(), err, "[HTTP] %s %s failed", r.Method, r.URL.Path)
		utils.RespondError(w, status, "internal server error")
		return
	}
	utils.RespondError(w, status, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// queryInt reads an integer query parameter, def when absent or malformed
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// readUpload returns the "file" part of a multipart request
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return "", nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file is required")
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read upload")
		return "", nil, false
	}
	return header.Filename, data, true
}

func sendTable(w http.ResponseWriter, f *services.TableFile) {
	utils.Attachment(w, f.ContentType, f.Name, f.Data)
}
