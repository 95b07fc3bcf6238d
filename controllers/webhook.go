package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	dbpkg "marketbot/db"
	"marketbot/tools"
	"marketbot/workers"

	"github.com/gin-gonic/gin"
)

// WebhookController concentra as dependências do fluxo de entrada.
// SAIA e Graph são opcionais; nil desliga a etapa correspondente do pipeline.
type WebhookController struct {
	VerifyToken string
	WhatsApp    *tools.WhatsAppClient
	SAIA        *tools.SAIAClient
	Graph       *tools.GraphClient
}

// GET /whatsapp
//
// Handshake de verificação do painel: ecoa hub.challenge quando o
// hub.verify_token confere; qualquer outra coisa é 400 com corpo vazio.
func (wc *WebhookController) Verify(c *gin.Context) {
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if token != "" && challenge != "" && token == wc.VerifyToken {
		c.String(http.StatusOK, "%s", challenge)
		return
	}

	c.String(http.StatusBadRequest, "")
}

// POST /whatsapp
//
// Sempre responde EVENT_RECEIVED, inclusive para payload malformado ou
// falha em qualquer etapa: a plataforma reenvia em caso de erro, e
// reentrega vale menos que a tempestade de retries que ela causa.
func (wc *WebhookController) Update(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("webhook: panic recuperado: %v", r)
		}
		c.String(http.StatusOK, "EVENT_RECEIVED")
	}()

	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("webhook: failed to read body: %v", err)
		return
	}

	var payload WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("webhook: invalid json: %v", err)
		return
	}

	msg, ok := firstMessage(payload)
	if !ok {
		return
	}

	phone := strings.TrimSpace(msg.From)
	text := GetTextUser(msg)

	// Mídia: o tipo literal vira o "texto" classificado (cenário de
	// acknowledgment) e o pipeline roda antes da resposta.
	if msg.Type == "image" || msg.Type == "document" {
		text = msg.Type

		media := msg.Image
		if msg.Type == "document" {
			media = msg.Document
		}
		if media != nil {
			workers.ProcessMediaEvent(c.Request.Context(), dbpkg.DBInstance(c), wc.WhatsApp, wc.SAIA, wc.Graph, workers.MediaEvent{
				From:     phone,
				FileID:   media.ID,
				FileName: media.Filename,
				MimeType: media.MimeType,
			})
		}
	}

	var sender MessageSender
	if wc.WhatsApp != nil {
		sender = wc.WhatsApp
	}
	ProcessMessage(c.Request.Context(), dbpkg.DBInstance(c), sender, text, phone)
}

// GET /welcome
func Welcome(c *gin.Context) {
	c.String(http.StatusOK, "method: welcome")
}
