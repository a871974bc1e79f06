package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversEncodedEvent(t *testing.T) {
	h := NewHub()

	h.Publish(Event{Type: "stock_update", Action: "sale_created", Message: "hello"})

	select {
	case msg := <-h.Broadcast:
		var evt Event
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, "sale_created", evt.Action)
		assert.Equal(t, "hello", evt.Message)
	case <-time.After(time.Second):
		t.Fatal("event not broadcast")
	}
}

func TestRunDrainsBroadcastWithoutClients(t *testing.T) {
	h := NewHub()
	go h.Run()

	sent := make(chan struct{})
	go func() {
		h.Broadcast <- []byte(`{}`)
		close(sent)
	}()

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("hub did not accept broadcast")
	}
	assert.Equal(t, 0, h.ClientCount())
}
