package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: FILE UPLOAD STATUS ****/
/************************************************/
const FILE_STATUS_PENDING = "pending"
const FILE_STATUS_TOO_LARGE = "too_large"
const FILE_STATUS_UPLOAD_FAILED = "upload_failed"
const FILE_STATUS_UPLOADED = "uploaded"
const FILE_STATUS_GRAPH_TOKEN_ERROR = "graph_token_error"
const FILE_STATUS_SAIA_NOT_CONFIGURED = "saia_client_not_configured"

// FileRecord é uma linha por mídia recebida (imagem/documento). Criado no
// recebimento e mutado conforme as etapas do pipeline completam; nunca
// apagado por este sistema.
type FileRecord struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Recipient        string     `gorm:"not null;index" json:"recipient"` // telefone do remetente (from)
	FileID           string     `gorm:"column:file_id;not null;unique_index" json:"file_id"`
	FileName         string     `gorm:"default:''" json:"file_name"`
	MimeType         string     `gorm:"default:''" json:"mime_type"`
	FileSize         int64      `gorm:"default:0" json:"file_size"`
	ExtractedContent string     `gorm:"type:text" json:"extracted_content"`
	UploadStatus     string     `gorm:"not null;default:'pending';index" json:"upload_status"`
	DownloadURL      string     `gorm:"type:text" json:"download_url"`
	CreatedAt        *time.Time `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

// UpsertFileRecord insere um registro para o file id da plataforma, ou
// devolve o existente. Entregas duplicadas do mesmo webhook reutilizam a
// mesma linha (chave: file_id).
func UpsertFileRecord(db *gorm.DB, rec FileRecord) (*FileRecord, error) {
	existing, err := FindFileRecordByFileID(db, rec.FileID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if rec.UploadStatus == "" {
		rec.UploadStatus = FILE_STATUS_PENDING
	}
	if err := db.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func FindFileRecordByFileID(db *gorm.DB, fileID string) (*FileRecord, error) {
	var rec FileRecord
	err := db.Where("file_id = ?", fileID).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateFileRecordFields aplica updates parciais (etapas do pipeline).
func UpdateFileRecordFields(db *gorm.DB, id int64, fields map[string]any) error {
	return db.Model(&FileRecord{}).Where("id = ?", id).Updates(fields).Error
}
