package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cleanguard-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversEvents(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(OccupancyEvent{
		Reason:  "employee added",
		Summary: &models.LockerSummary{TotalOccupied: 3, TotalLockers: 240},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got OccupancyEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "employee added", got.Reason)
	assert.Equal(t, 3, got.Summary.TotalOccupied)
	assert.False(t, got.Timestamp.IsZero())
}

func TestPublishOnNilHubIsNoop(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish(OccupancyEvent{Reason: "x"}) })
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	hub := NewHub()
	for i := 0; i < cap(hub.broadcast)+5; i++ {
		hub.Publish(OccupancyEvent{Reason: "flood"})
	}
	assert.Equal(t, cap(hub.broadcast), len(hub.broadcast))
}
