package tools

import "fmt"

/************************************************
/**** MARK: MESSAGE TYPES ****/
/************************************************/
const MESSAGE_TYPE_TEXT = "text"
const MESSAGE_TYPE_IMAGE = "image"
const MESSAGE_TYPE_AUDIO = "audio"
const MESSAGE_TYPE_VIDEO = "video"
const MESSAGE_TYPE_DOCUMENT = "document"
const MESSAGE_TYPE_LOCATION = "location"
const MESSAGE_TYPE_INTERACTIVE = "interactive"

// Message é um payload de saída do WhatsApp Cloud API. O campo Type indica
// qual dos ponteiros abaixo está preenchido; os demais ficam nil e são
// omitidos na serialização.
type Message struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`

	Text        *TextBody    `json:"text,omitempty"`
	Image       *MediaLink   `json:"image,omitempty"`
	Audio       *MediaLink   `json:"audio,omitempty"`
	Video       *MediaLink   `json:"video,omitempty"`
	Document    *MediaLink   `json:"document,omitempty"`
	Location    *Location    `json:"location,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

type TextBody struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type MediaLink struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Name      string `json:"name"`
	Address   string `json:"address"`
}

type Interactive struct {
	Type   string             `json:"type"`
	Body   *InteractiveBody   `json:"body,omitempty"`
	Footer *InteractiveFooter `json:"footer,omitempty"`
	Action *InteractiveAction `json:"action,omitempty"`
}

type InteractiveBody struct {
	Text string `json:"text"`
}

type InteractiveFooter struct {
	Text string `json:"text"`
}

type InteractiveAction struct {
	Buttons  []InteractiveButton `json:"buttons,omitempty"`
	Button   string              `json:"button,omitempty"`
	Sections []ListSection       `json:"sections,omitempty"`
}

type InteractiveButton struct {
	Type  string      `json:"type"`
	Reply ButtonReply `json:"reply"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func envelope(phone string, kind string) Message {
	return Message{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               phone,
		Type:             kind,
	}
}

// TextMessage monta uma mensagem de texto simples (sem preview de link).
func TextMessage(body string, phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_TEXT)
	m.Text = &TextBody{PreviewURL: false, Body: body}
	return m
}

// TextFormatMessage demonstra a marcação de formatação do WhatsApp
// (negrito, itálico, tachado e monoespaçado) sobre o mesmo texto.
func TextFormatMessage(body string, phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_TEXT)
	m.Text = &TextBody{
		PreviewURL: false,
		Body:       fmt.Sprintf("%s, *%s*, _%s_, ~%s~, ```%s```", body, body, body, body, body),
	}
	return m
}

func ImageMessage(caption string, phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_IMAGE)
	m.Image = &MediaLink{
		Link:    "https://funko.com/dw/image/v2/BGTS_PRD/on/demandware.static/-/Sites-funko-master-catalog/default/dw8c649906/images/funko/upload/87245b_OP_LucciChase_POP_GLAM-CH-WEB.png",
		Caption: caption,
	}
	return m
}

func AudioMessage(phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_AUDIO)
	m.Audio = &MediaLink{
		Link: "https://biostoragecloud.blob.core.windows.net/resource-udemy-whatsapp-node/audio_whatsapp.mp3",
	}
	return m
}

func VideoMessage(caption string, phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_VIDEO)
	m.Video = &MediaLink{
		Link:    "https://biostoragecloud.blob.core.windows.net/resource-udemy-whatsapp-node/video_whatsapp.mp4",
		Caption: caption,
	}
	return m
}

func DocumentMessage(caption string, phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_DOCUMENT)
	m.Document = &MediaLink{
		Link:    "https://biostoragecloud.blob.core.windows.net/resource-udemy-whatsapp-node/document_whatsapp.pdf",
		Caption: caption,
	}
	return m
}

// LocationMessage aponta para a agência (endereço fixo).
func LocationMessage(phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_LOCATION)
	m.Location = &Location{
		Latitude:  "-33.629036",
		Longitude: "-70.769951",
		Name:      "Estadio Nacional",
		Address:   "Av. Grecia 2001, Ñuñoa, Región Metropolitana",
	}
	return m
}

// ButtonsMessage monta a confirmação Sim/Não de registro.
// Catálogo fixo: é asset de apresentação, não regra de negócio.
func ButtonsMessage(phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_INTERACTIVE)
	m.Interactive = &Interactive{
		Type: "button",
		Body: &InteractiveBody{Text: "¿Confirmas tu registro?"},
		Action: &InteractiveAction{
			Buttons: []InteractiveButton{
				{Type: "reply", Reply: ButtonReply{ID: "btn_001", Title: "👍 Si"}},
				{Type: "reply", Reply: ButtonReply{ID: "btn_002", Title: "👎 No"}},
			},
		},
	}
	return m
}

// ListMessage monta o menu principal (duas seções fixas).
func ListMessage(phone string) Message {
	m := envelope(phone, MESSAGE_TYPE_INTERACTIVE)
	m.Interactive = &Interactive{
		Type:   "list",
		Body:   &InteractiveBody{Text: "✅ I have these options"},
		Footer: &InteractiveFooter{Text: "Select an option"},
		Action: &InteractiveAction{
			Button: "See options",
			Sections: []ListSection{
				{
					Title: "Buy and sell products",
					Rows: []ListRow{
						{ID: "main-buy", Title: "Buy", Description: "Buy the best product your home"},
						{ID: "main-sell", Title: "Sell", Description: "Sell your products"},
					},
				},
				{
					Title: "📍Center of Attention",
					Rows: []ListRow{
						{ID: "main-agency", Title: "Agency", Description: "Your can visit our agency"},
						{ID: "main-contact", Title: "Contact center", Description: "One of our agents will assist you"},
					},
				},
			},
		},
	}
	return m
}
