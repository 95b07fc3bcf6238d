package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTextUserPlainText(t *testing.T) {
	msg := InboundMessage{Type: "text", Text: &InboundText{Body: "hola"}}
	assert.Equal(t, "hola", GetTextUser(msg))
}

func TestGetTextUserTextWithoutBody(t *testing.T) {
	assert.Equal(t, "", GetTextUser(InboundMessage{Type: "text"}))
}

func TestGetTextUserButtonReply(t *testing.T) {
	msg := InboundMessage{
		Type: "interactive",
		Interactive: &InboundInteractive{
			Type:        "button_reply",
			ButtonReply: &InteractiveReply{ID: "btn_001", Title: "👍 Si"},
		},
	}
	assert.Equal(t, "👍 Si", GetTextUser(msg))
}

func TestGetTextUserListReply(t *testing.T) {
	msg := InboundMessage{
		Type: "interactive",
		Interactive: &InboundInteractive{
			Type:      "list_reply",
			ListReply: &InteractiveReply{ID: "main-buy", Title: "Buy"},
		},
	}
	assert.Equal(t, "Buy", GetTextUser(msg))
}

func TestGetTextUserDegradesToEmpty(t *testing.T) {
	cases := []InboundMessage{
		{Type: "audio"},
		{Type: "image", Image: &InboundMedia{ID: "media-1"}},
		{Type: "document", Document: &InboundMedia{ID: "media-2"}},
		{Type: "sticker"},
		{Type: "interactive"},
		{Type: "interactive", Interactive: &InboundInteractive{Type: "button_reply"}},
		{},
	}
	for _, msg := range cases {
		assert.Equal(t, "", GetTextUser(msg), "type %q", msg.Type)
	}
}

func TestFirstMessageWalksEnvelope(t *testing.T) {
	raw := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "123",
			"changes": [{
				"field": "messages",
				"value": {
					"messages": [{
						"from": "56912345678",
						"id": "wamid.1",
						"type": "text",
						"text": {"body": "Hola"}
					}]
				}
			}]
		}]
	}`

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	msg, ok := firstMessage(payload)
	require.True(t, ok)
	assert.Equal(t, "56912345678", msg.From)
	assert.Equal(t, "Hola", GetTextUser(msg))
}

func TestFirstMessageEmptyEnvelope(t *testing.T) {
	for _, raw := range []string{`{}`, `{"entry":[]}`, `{"entry":[{"changes":[]}]}`, `{"entry":[{"changes":[{"value":{}}]}]}`} {
		var payload WebhookPayload
		require.NoError(t, json.Unmarshal([]byte(raw), &payload))
		_, ok := firstMessage(payload)
		assert.False(t, ok, "payload %s", raw)
	}
}
