package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cleanguard-backend/internal/lockers"
	"cleanguard-backend/internal/models"
)

const maxLabelCopies = 20

// LabelService sends locker labels to the printer bridge, a small HTTP
// service next to the label printer that renders the QR code
type LabelService struct {
	Employees *EmployeeService
	Logs      *SystemLogService
	client    *http.Client
	baseURL   string
}

type PrintLabelRequest struct {
	Payload string `json:"payload"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	Copies  int    `json:"copies"`
}

type PrintResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LabelPreview is returned to clients that render the label themselves
type LabelPreview struct {
	EmpNo   string `json:"emp_no"`
	Name    string `json:"name"`
	Payload string `json:"payload"`
}

func NewLabelService(employees *EmployeeService, logs *SystemLogService, baseURL string, timeout time.Duration) *LabelService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LabelService{
		Employees: employees,
		Logs:      logs,
		client:    &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// BuildLabelPayload is the QR text: emp_no, name and the four lockers
// labelled by kind. Blank slots stay empty after the colon.
func BuildLabelPayload(info *models.EmployeeLockerInfo) string {
	a := models.LockerAssignment{
		Floor1Clothes: info.Locker1FClothes,
		Floor1Shoe:    info.Locker1FShoe,
		Floor2Clothes: info.Locker2FClothes,
		Floor2Shoe:    info.Locker2FShoe,
	}
	parts := []string{info.EmpNo, info.Name}
	for _, slot := range a.Slots() {
		parts = append(parts, lockers.KindLabel(slot.Kind)+":"+slot.LockerID)
	}
	return strings.Join(parts, "|")
}

// Preview returns the payload without printing
func (s *LabelService) Preview(ctx context.Context, empNo string) (*LabelPreview, error) {
	info, err := s.Employees.LockerInfo(ctx, empNo)
	if err != nil {
		return nil, err
	}
	return &LabelPreview{EmpNo: info.EmpNo, Name: info.Name, Payload: BuildLabelPayload(info)}, nil
}

// Print sends the label to the bridge and records a Print log
func (s *LabelService) Print(ctx context.Context, empNo string, copies int, operator string) (*LabelPreview, error) {
	if copies < 1 {
		copies = 1
	}
	if copies > maxLabelCopies {
		return nil, validationf("at most %d copies per request", maxLabelCopies)
	}

	preview, err := s.Preview(ctx, empNo)
	if err != nil {
		return nil, err
	}

	req := PrintLabelRequest{
		Payload: preview.Payload,
		Line1:   preview.EmpNo,
		Line2:   preview.Name,
		Copies:  copies,
	}
	if err := s.sendPrintRequest(ctx, "/print-qr", req); err != nil {
		return nil, unavailablef("label printer: %v", err)
	}

	s.Logs.record(ctx, models.LogTypePrint, operator,
		fmt.Sprintf("label printed: %s-%s, qr=%s", preview.EmpNo, preview.Name, preview.Payload))
	return preview, nil
}

func (s *LabelService) sendPrintRequest(ctx context.Context, endpoint string, req PrintLabelRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal print request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send print request: %w", err)
	}
	defer resp.Body.Close()

	var printResp PrintResponse
	if err := json.NewDecoder(resp.Body).Decode(&printResp); err != nil {
		return fmt.Errorf("failed to decode print response: %w", err)
	}

	if !printResp.Success {
		return fmt.Errorf("print failed: %s", printResp.Message)
	}

	return nil
}
