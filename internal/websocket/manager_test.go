package websocket

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvent(t *testing.T, c *Client) IncomingEvent {
	t.Helper()
	select {
	case raw := <-c.send:
		var ev IncomingEvent
		require.NoError(t, json.Unmarshal(raw, &ev))
		return ev
	default:
		t.Fatal("нет исходящего сообщения")
		return IncomingEvent{}
	}
}

func TestManager_DispatchesByType(t *testing.T) {
	m := NewManager()
	client := NewClient(nil, "session-1")
	var got string
	m.RegisterHandler(ANSWER, func(data json.RawMessage, c *Client) error {
		var payload struct {
			Answer string `json:"answer"`
		}
		require.NoError(t, json.Unmarshal(data, &payload))
		got = payload.Answer
		return c.SendEvent(ANSWER_RESULT, map[string]bool{"correct": true})
	})

	err := m.HandleMessage([]byte(`{"type":"ANSWER","data":{"answer":"range"}}`), client)

	require.NoError(t, err)
	assert.Equal(t, "range", got)
	assert.Equal(t, ANSWER_RESULT, readEvent(t, client).Type)
}

func TestManager_UnknownTypeKeepsConnection(t *testing.T) {
	m := NewManager()
	client := NewClient(nil, "session-1")

	err := m.HandleMessage([]byte(`{"type":"JUMP"}`), client)

	assert.NoError(t, err)
	ev := readEvent(t, client)
	assert.Equal(t, ERROR, ev.Type)
	var data ErrorData
	require.NoError(t, json.Unmarshal(ev.Data, &data))
	assert.Equal(t, "unknown_message_type", data.Code)
}

func TestManager_InvalidJSONClosesConnection(t *testing.T) {
	m := NewManager()
	client := NewClient(nil, "session-1")

	err := m.HandleMessage([]byte(`not json`), client)

	assert.Error(t, err)
	assert.Equal(t, ERROR, readEvent(t, client).Type)
}

func TestManager_HandlerErrorPropagates(t *testing.T) {
	m := NewManager()
	client := NewClient(nil, "session-1")
	m.RegisterHandler(NEXT, func(json.RawMessage, *Client) error { return errors.New("fatal") })

	assert.Error(t, m.HandleMessage([]byte(`{"type":"NEXT"}`), client))
}

func TestClient_SendAfterClose(t *testing.T) {
	client := NewClient(nil, "session-1")

	assert.True(t, client.CloseSend())
	assert.False(t, client.CloseSend())
	assert.ErrorIs(t, client.SendEvent(STATE, nil), ErrClientClosed)
}

func TestClient_SendBufferFull(t *testing.T) {
	client := NewClient(nil, "session-1")
	for i := 0; i < defaultClientBufferSize; i++ {
		require.NoError(t, client.SendEvent(STATE, i))
	}

	assert.ErrorIs(t, client.SendEvent(STATE, "overflow"), ErrSendBufferFull)
}

func TestSafeHandleMessage_RecoversPanic(t *testing.T) {
	client := NewClient(nil, "session-1")

	err := safeHandleMessage([]byte("{}"), client, func([]byte, *Client) error { panic("boom") })

	assert.Error(t, err)
}
