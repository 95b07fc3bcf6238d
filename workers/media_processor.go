package workers

import (
	"context"
	"encoding/json"
	"log"
	"mime"
	"strings"

	"marketbot/models"
	"marketbot/tools"

	"github.com/jinzhu/gorm"
)

// Prompt fixo de extração enviado ao assistant junto com o arquivo.
const extractionPrompt = "Extrae todos los datos visibles del documento de identidad y devuelvelos en formato JSON."

// MediaEvent é o recorte de um evento inbound de imagem/documento que o
// pipeline precisa.
type MediaEvent struct {
	From     string
	FileID   string
	FileName string
	MimeType string
}

// ProcessMediaEvent roda o pipeline de mídia de ponta a ponta, síncrono:
// registro, download, extração via SAIA e upload para o Graph. Cada etapa
// externa é best-effort e independente; o resultado parcial fica no status
// do FileRecord, nada é desfeito e nenhuma falha sobe para o handler.
func ProcessMediaEvent(ctx context.Context, db *gorm.DB, wa *tools.WhatsAppClient, saia *tools.SAIAClient, graph *tools.GraphClient, ev MediaEvent) {
	if db == nil || strings.TrimSpace(ev.FileID) == "" {
		return
	}

	rec, err := models.UpsertFileRecord(db, models.FileRecord{
		Recipient:    ev.From,
		FileID:       ev.FileID,
		FileName:     ev.FileName,
		MimeType:     ev.MimeType,
		UploadStatus: models.FILE_STATUS_PENDING,
	})
	if err != nil {
		log.Printf("media: upsert file record error: %v", err)
		return
	}

	if wa == nil {
		log.Printf("media: whatsapp client não configurado, file_id=%s", ev.FileID)
		return
	}

	desc, err := wa.GetFile(ctx, ev.FileID)
	if err != nil {
		log.Printf("media: get file error: %v", err)
		return
	}
	_ = models.UpdateFileRecordFields(db, rec.ID, map[string]any{
		"mime_type": desc.MimeType,
		"file_size": desc.FileSize,
	})

	data, err := wa.DownloadFile(ctx, desc.URL)
	if err != nil {
		log.Printf("media: download error: %v", err)
		return
	}

	name := fileName(ev, desc.MimeType)

	// Extração via SAIA (não bloqueia o upload para o Graph).
	if saia == nil {
		_ = models.UpdateFileRecordFields(db, rec.ID, map[string]any{
			"upload_status": models.FILE_STATUS_SAIA_NOT_CONFIGURED,
		})
	} else {
		alias := ""
		if up, err := saia.UploadBytes(ctx, data, name, "", ""); err != nil {
			log.Printf("media: saia upload error: %v", err)
		} else {
			alias = up.FileAlias
		}
		if resp, err := saia.Chat(ctx, extractionPrompt, alias); err != nil {
			log.Printf("media: saia chat error: %v", err)
		} else {
			_ = models.UpdateFileRecordFields(db, rec.ID, map[string]any{
				"extracted_content": extractedContent(resp),
			})
		}
	}

	// Upload para o OneDrive/SharePoint via Graph.
	if graph == nil || !graph.Configured() {
		return
	}

	token, err := graph.Token(ctx)
	if err != nil {
		log.Printf("media: graph token error: %v", err)
		_ = models.UpdateFileRecordFields(db, rec.ID, map[string]any{
			"upload_status": models.FILE_STATUS_GRAPH_TOKEN_ERROR,
		})
		return
	}

	item, err := graph.UploadSmallFile(ctx, token, name, data)
	if err == tools.ErrFileTooLarge {
		log.Printf("media: arquivo acima do limite de upload direto, file_id=%s size=%d", ev.FileID, len(data))
		_ = models.UpdateFileRecordFields(db, rec.ID, map[string]any{
			"upload_status": models.FILE_STATUS_TOO_LARGE,
		})
		return
	}
	if err != nil {
		log.Printf("media: graph upload error: %v", err)
		_ = models.UpdateFileRecordFields(db, rec.ID, map[string]any{
			"upload_status": models.FILE_STATUS_UPLOAD_FAILED,
		})
		return
	}

	_ = models.UpdateFileRecordFields(db, rec.ID, map[string]any{
		"upload_status": models.FILE_STATUS_UPLOADED,
		"download_url":  item.AccessURL(),
	})
}

// fileName escolhe um nome utilizável: o original quando veio no evento
// (documentos), senão file id + extensão inferida do mime (imagens).
func fileName(ev MediaEvent, mimeType string) string {
	if strings.TrimSpace(ev.FileName) != "" {
		return ev.FileName
	}
	ext := ""
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return ev.FileID + ext
}

// extractedContent serializa a resposta do assistant para a coluna de texto:
// texto plano sai direto, JSON estruturado vira a string JSON.
func extractedContent(resp map[string]any) string {
	if m, ok := resp["message"].(string); ok && len(resp) == 1 {
		return m
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return ""
	}
	return string(b)
}
