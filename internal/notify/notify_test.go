package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// recordingNotifier captures every alert it is asked to send.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []model.Alert
	err    error
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Send(ctx context.Context, a model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

func alert(cik int64, kind string, sev model.Severity) model.Alert {
	return model.Alert{
		ID:       uuid.New(),
		CIK:      cik,
		Ticker:   "ALPH",
		Kind:     kind,
		Severity: sev,
		Message:  "test alert",
		At:       time.Now(),
	}
}

func TestDispatcher_SeverityFloor(t *testing.T) {
	rec := &recordingNotifier{}
	d := NewDispatcher(model.SeverityWarning, time.Hour, nil, nil, rec)

	d.Publish(context.Background(), alert(1, "deal_announced", model.SeverityCritical))
	d.Publish(context.Background(), alert(1, "meeting_scheduled", model.SeverityWarning))
	d.Publish(context.Background(), alert(1, "proxy_filed", model.SeverityInfo))

	assert.Equal(t, 2, rec.count(), "info alert should be filtered")
}

func TestDispatcher_DedupeWindow(t *testing.T) {
	rec := &recordingNotifier{}
	d := NewDispatcher(model.SeverityInfo, time.Hour, nil, nil, rec)

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return current }

	d.Publish(context.Background(), alert(1, "deal_announced", model.SeverityCritical))
	d.Publish(context.Background(), alert(1, "deal_announced", model.SeverityCritical))
	assert.Equal(t, 1, rec.count(), "repeat within window should be suppressed")

	// A different SPAC or kind is a different key.
	d.Publish(context.Background(), alert(2, "deal_announced", model.SeverityCritical))
	d.Publish(context.Background(), alert(1, "redemption", model.SeverityCritical))
	assert.Equal(t, 3, rec.count())

	// Past the window the same key fires again.
	current = current.Add(2 * time.Hour)
	d.Publish(context.Background(), alert(1, "deal_announced", model.SeverityCritical))
	assert.Equal(t, 4, rec.count())
}

func TestDispatcher_NotifierFailureDoesNotPropagate(t *testing.T) {
	broken := &recordingNotifier{err: context.DeadlineExceeded}
	working := &recordingNotifier{}
	d := NewDispatcher(model.SeverityInfo, 0, nil, nil, broken, working)

	d.Publish(context.Background(), alert(1, "deal_announced", model.SeverityCritical))

	assert.Equal(t, 1, working.count(), "later notifiers still run after one fails")
}

func TestTelegram_Send(t *testing.T) {
	var gotPath string
	var gotChatID, gotText string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotChatID = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tg := NewTelegram("123:abc", "-100200300", WithTelegramAPI(server.URL))

	a := alert(1234567, "deal_announced", model.SeverityCritical)
	a.Message = "Alpha Acquisition Corp announced a deal"
	require.NoError(t, tg.Send(context.Background(), a))

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "-100200300", gotChatID)
	assert.Contains(t, gotText, "[CRITICAL]")
	assert.Contains(t, gotText, "announced a deal")
	assert.Contains(t, gotText, "CIK: 1234567")
}

func TestTelegram_SendHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	tg := NewTelegram("123:abc", "bogus", WithTelegramAPI(server.URL))

	err := tg.Send(context.Background(), alert(1, "deal_announced", model.SeverityCritical))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	server := httptest.NewServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Wait for registration.
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 },
		2*time.Second, 10*time.Millisecond)

	a := alert(1234567, "deal_announced", model.SeverityCritical)
	require.NoError(t, hub.Send(context.Background(), a))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got wireAlert
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, a.ID.String(), got.ID)
	assert.Equal(t, int64(1234567), got.CIK)
	assert.Equal(t, "CRITICAL", got.Severity)
	assert.Equal(t, "deal_announced", got.Kind)
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	server := httptest.NewServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 },
		2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 0 },
		2*time.Second, 10*time.Millisecond)

	// Broadcasting to an empty hub is fine.
	require.NoError(t, hub.Send(context.Background(), alert(1, "x", model.SeverityInfo)))
}
