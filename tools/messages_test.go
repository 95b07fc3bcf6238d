package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "56912345678"

func TestBuildersStampEnvelope(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		kind string
	}{
		{"text", TextMessage("hola", testPhone), MESSAGE_TYPE_TEXT},
		{"text_format", TextFormatMessage("hola", testPhone), MESSAGE_TYPE_TEXT},
		{"image", ImageMessage("caption", testPhone), MESSAGE_TYPE_IMAGE},
		{"audio", AudioMessage(testPhone), MESSAGE_TYPE_AUDIO},
		{"video", VideoMessage("caption", testPhone), MESSAGE_TYPE_VIDEO},
		{"document", DocumentMessage("caption", testPhone), MESSAGE_TYPE_DOCUMENT},
		{"location", LocationMessage(testPhone), MESSAGE_TYPE_LOCATION},
		{"buttons", ButtonsMessage(testPhone), MESSAGE_TYPE_INTERACTIVE},
		{"list", ListMessage(testPhone), MESSAGE_TYPE_INTERACTIVE},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, "whatsapp", tc.msg.MessagingProduct)
			assert.Equal(t, "individual", tc.msg.RecipientType)
			assert.Equal(t, testPhone, tc.msg.To)
			assert.Equal(t, tc.kind, tc.msg.Type)
		})
	}
}

func TestBuildersArePure(t *testing.T) {
	a := ButtonsMessage(testPhone)
	b := ButtonsMessage(testPhone)
	assert.Equal(t, a, b)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestTextMessageBody(t *testing.T) {
	m := TextMessage("Hola, ¿Como estas?", testPhone)
	require.NotNil(t, m.Text)
	assert.Equal(t, "Hola, ¿Como estas?", m.Text.Body)
	assert.False(t, m.Text.PreviewURL)

	// só a variante do tipo fica preenchida
	assert.Nil(t, m.Image)
	assert.Nil(t, m.Interactive)
	assert.Nil(t, m.Location)
}

func TestTextFormatMessageRendersMarkup(t *testing.T) {
	m := TextFormatMessage("hey", testPhone)
	require.NotNil(t, m.Text)
	assert.Equal(t, "hey, *hey*, _hey_, ~hey~, ```hey```", m.Text.Body)
}

func TestButtonsMessageCatalog(t *testing.T) {
	m := ButtonsMessage(testPhone)
	require.NotNil(t, m.Interactive)
	assert.Equal(t, "button", m.Interactive.Type)
	assert.Equal(t, "¿Confirmas tu registro?", m.Interactive.Body.Text)

	require.Len(t, m.Interactive.Action.Buttons, 2)
	assert.Equal(t, "btn_001", m.Interactive.Action.Buttons[0].Reply.ID)
	assert.Equal(t, "btn_002", m.Interactive.Action.Buttons[1].Reply.ID)
}

func TestListMessageCatalog(t *testing.T) {
	m := ListMessage(testPhone)
	require.NotNil(t, m.Interactive)
	assert.Equal(t, "list", m.Interactive.Type)

	require.Len(t, m.Interactive.Action.Sections, 2)
	first := m.Interactive.Action.Sections[0]
	require.Len(t, first.Rows, 2)
	assert.Equal(t, "main-buy", first.Rows[0].ID)
	assert.Equal(t, "main-sell", first.Rows[1].ID)
}

func TestLocationMessageFixedAddress(t *testing.T) {
	m := LocationMessage(testPhone)
	require.NotNil(t, m.Location)
	assert.Equal(t, "-33.629036", m.Location.Latitude)
	assert.Equal(t, "-70.769951", m.Location.Longitude)
	assert.Equal(t, "Estadio Nacional", m.Location.Name)
}

func TestMessageWireShape(t *testing.T) {
	b, err := json.Marshal(TextMessage("hola", testPhone))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Equal(t, "whatsapp", raw["messaging_product"])
	assert.Equal(t, "individual", raw["recipient_type"])
	assert.Equal(t, testPhone, raw["to"])
	assert.Equal(t, "text", raw["type"])
	// variantes não usadas ficam fora do wire
	_, hasImage := raw["image"]
	assert.False(t, hasImage)
}
