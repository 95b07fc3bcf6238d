package controllers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"marketbot/models"
	"marketbot/tools"

	"github.com/jinzhu/gorm"
)

// MessageSender entrega um payload de saída pela plataforma de mensagens.
type MessageSender interface {
	SendMessage(ctx context.Context, msg tools.Message) error
}

// Grupos de keywords em ordem de prioridade. O match é por substring
// (sem fronteira de palavra): "buying" casa com "buy". Comportamento
// observado em produção; não mudar sem mudar as respostas esperadas.
var greetingKeywords = []string{"hi", "hello", "hola", "buenas"}
var thanksKeywords = []string{"thanks", "thank", "thank you", "gracias"}
var mediaKeywords = []string{"image", "document"}
var buySellKeywords = []string{"buy", "sell", "comprar", "vender"}
var loginKeywords = []string{"login", "log in"}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// FirstName devolve o primeiro token do nome ("Maria Jose Perez" -> "Maria").
func FirstName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// BuildReplies classifica o texto e monta a sequência de respostas, na
// ordem de envio. firstName vazio seleciona as variantes sem personalização.
func BuildReplies(text string, firstName string, phone string) []tools.Message {
	message := strings.ToLower(text)

	switch {
	case containsAny(message, greetingKeywords):
		greeting := "Hola, ¿Como estas?"
		if firstName != "" {
			greeting = fmt.Sprintf("Hola %s, ¿Como estas?", firstName)
		}
		return []tools.Message{
			tools.TextMessage(greeting, phone),
			tools.TextMessage("Para continuar con tu registro, envía una foto de tu documento de identidad", phone),
		}

	case containsAny(message, thanksKeywords):
		ack := "Gracias por contactarnos"
		if firstName != "" {
			ack = fmt.Sprintf("Gracias por contactarnos, %s", firstName)
		}
		return []tools.Message{tools.TextMessage(ack, phone)}

	case containsAny(message, mediaKeywords):
		return []tools.Message{
			tools.TextMessage("Estamos procesando tu archivo, te avisaremos cuando este listo", phone),
		}

	case strings.Contains(message, "agency"):
		return []tools.Message{
			tools.TextMessage("Esta es nuestra agencia", phone),
			tools.LocationMessage(phone),
		}

	case strings.Contains(message, "contact"):
		return []tools.Message{
			tools.TextMessage("*Contact Center:*\n56963230969", phone),
		}

	case containsAny(message, buySellKeywords):
		return []tools.Message{tools.ButtonsMessage(phone)}

	case strings.Contains(message, "register"):
		return []tools.Message{
			tools.TextMessage("Ingresa al siguiente links para registrar\nhttps://qa-gestioncontratistas.cmp.cl/#/auth/forgot-password", phone),
		}

	case containsAny(message, loginKeywords):
		return []tools.Message{
			tools.TextMessage("Ingresa al siguiente links para login\nhttps://qa-gestioncontratistas.cmp.cl/#/auth/login", phone),
		}

	default:
		fallback := "Lo siento, no entiendo lo que me quieres decir"
		if firstName != "" {
			fallback = fmt.Sprintf("Lo siento %s, no entiendo lo que me quieres decir", firstName)
		}
		return []tools.Message{tools.TextMessage(fallback, phone)}
	}
}

// ProcessMessage resolve o nome do remetente (uma vez, antes da seleção do
// cenário), monta as respostas e envia cada uma em ordem. Falha de envio é
// logada e não bloqueia os envios seguintes.
func ProcessMessage(ctx context.Context, db *gorm.DB, sender MessageSender, text string, phone string) {
	firstName := ""
	if db != nil {
		person, err := models.FindPersonByPhone(db, phone)
		if err != nil {
			log.Printf("responder: person lookup error: %v", err)
		} else if person != nil {
			firstName = FirstName(person.Name)
		}
	}

	replies := BuildReplies(text, firstName, phone)

	if sender == nil {
		log.Printf("responder: sender não configurado, %d mensagens descartadas", len(replies))
		return
	}
	for _, m := range replies {
		if err := sender.SendMessage(ctx, m); err != nil {
			log.Printf("responder: send error: %v", err)
		}
	}
}
