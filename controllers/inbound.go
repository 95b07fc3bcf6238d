package controllers

import "strings"

// WebhookPayload é a estrutura mínima do envelope de eventos do Cloud API.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Messages []InboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type InboundMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`

	Text        *InboundText        `json:"text,omitempty"`
	Interactive *InboundInteractive `json:"interactive,omitempty"`
	Image       *InboundMedia       `json:"image,omitempty"`
	Document    *InboundMedia       `json:"document,omitempty"`
}

type InboundText struct {
	Body string `json:"body"`
}

type InboundInteractive struct {
	Type        string            `json:"type"`
	ButtonReply *InteractiveReply `json:"button_reply,omitempty"`
	ListReply   *InteractiveReply `json:"list_reply,omitempty"`
}

type InteractiveReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type InboundMedia struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	SHA256   string `json:"sha256"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// firstMessage pega entry[0].changes[0].value.messages[0], o único evento
// que o Cloud API entrega por callback na prática.
func firstMessage(payload WebhookPayload) (InboundMessage, bool) {
	if len(payload.Entry) == 0 {
		return InboundMessage{}, false
	}
	entry := payload.Entry[0]
	if len(entry.Changes) == 0 {
		return InboundMessage{}, false
	}
	msgs := entry.Changes[0].Value.Messages
	if len(msgs) == 0 {
		return InboundMessage{}, false
	}
	return msgs[0], true
}

// GetTextUser extrai o texto que o usuário quis enviar: o body de uma
// mensagem de texto ou o título da opção interativa escolhida. Qualquer
// outro tipo (mídia, não suportado) vira string vazia; nunca falha.
func GetTextUser(msg InboundMessage) string {
	switch strings.ToLower(msg.Type) {
	case "text":
		if msg.Text != nil {
			return msg.Text.Body
		}
	case "interactive":
		if msg.Interactive == nil {
			return ""
		}
		switch msg.Interactive.Type {
		case "button_reply":
			if msg.Interactive.ButtonReply != nil {
				return msg.Interactive.ButtonReply.Title
			}
		case "list_reply":
			if msg.Interactive.ListReply != nil {
				return msg.Interactive.ListReply.Title
			}
		}
	}
	return ""
}
