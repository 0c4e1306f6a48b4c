package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLabelPayload(t *testing.T) {
	info := &models.EmployeeLockerInfo{
		EmpNo:           "P001",
		Name:            "张三",
		Locker1FClothes: "1F-C-01",
		Locker2FShoe:    "2F-S-07",
	}
	assert.Equal(t, "P001|张三|1F衣柜:1F-C-01|1F鞋柜:|2F衣柜:|2F鞋柜:2F-S-07", BuildLabelPayload(info))
}

func TestSendPrintRequest(t *testing.T) {
	var got PrintLabelRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/print-qr", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(PrintResponse{Success: true})
	}))
	defer srv.Close()

	svc := NewLabelService(nil, nil, srv.URL+"/", time.Second)
	req := PrintLabelRequest{Payload: "P001|张三|1F衣柜:|1F鞋柜:|2F衣柜:|2F鞋柜:", Line1: "P001", Line2: "张三", Copies: 2}
	require.NoError(t, svc.sendPrintRequest(context.Background(), "/print-qr", req))
	assert.Equal(t, req, got)
}

func TestSendPrintRequest_BridgeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PrintResponse{Success: false, Message: "out of labels"})
	}))
	defer srv.Close()

	svc := NewLabelService(nil, nil, srv.URL, time.Second)
	err := svc.sendPrintRequest(context.Background(), "/print-qr", PrintLabelRequest{Copies: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of labels")
}

func TestPrint_RejectsTooManyCopies(t *testing.T) {
	svc := NewLabelService(nil, nil, "http://127.0.0.1:1", time.Second)
	_, err := svc.Print(context.Background(), "P001", maxLabelCopies+1, "tester")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
