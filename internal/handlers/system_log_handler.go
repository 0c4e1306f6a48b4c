package handlers

import (
	"net/http"
	"time"

	"cleanguard-backend/internal/middleware"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/services"
	"cleanguard-backend/internal/timeutil"
	"cleanguard-backend/pkg/utils"
)

const csvContentType = "text/csv; charset=utf-8"

type SystemLogHandler struct {
	Service *services.SystemLogService
}

func NewSystemLogHandler(s *services.SystemLogService) *SystemLogHandler {
	return &SystemLogHandler{Service: s}
}

// ListLogs handles GET /api/logs?type=&limit=
func (h *SystemLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Service.Query(r.Context(), r.URL.Query().Get("type"), queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}

// WriteLog appends a free-form log row
func (h *SystemLogHandler) WriteLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LogType string `json:"log_type"`
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.Write(r.Context(), req.LogType, req.Message, middleware.Operator(r.Context())); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"message": "Log written"})
}

func (h *SystemLogHandler) ExportLogs(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportCSV(r.Context(), r.URL.Query().Get("type"), queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.Attachment(w, csvContentType, "system_logs_"+timeutil.Now().Format(timeutil.BackupLayout)+".csv", data)
}

// auditFilter reads op, from, to (yyyy-mm-dd), keyword and limit
func auditFilter(r *http.Request) (models.ProcessAuditFilter, bool) {
	q := r.URL.Query()
	f := models.ProcessAuditFilter{
		OpType:  q.Get("op"),
		Keyword: q.Get("keyword"),
		Limit:   queryInt(r, "limit", 0),
	}
	for name, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		t, err := timeutil.ParseDate(v)
		if err != nil {
			return f, false
		}
		*dst = &t
	}
	return f, true
}

func (h *SystemLogHandler) ProcessAudit(w http.ResponseWriter, r *http.Request) {
	f, ok := auditFilter(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "from and to must be dates like 2024-05-01")
		return
	}
	res, err := h.Service.QueryProcessAudit(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *SystemLogHandler) ExportProcessAudit(w http.ResponseWriter, r *http.Request) {
	f, ok := auditFilter(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "from and to must be dates like 2024-05-01")
		return
	}
	data, err := h.Service.ExportProcessAuditCSV(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.Attachment(w, csvContentType, "process_audit_"+timeutil.Now().Format(timeutil.BackupLayout)+".csv", data)
}
