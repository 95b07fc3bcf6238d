package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertFileRecordIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	first, err := UpsertFileRecord(db, FileRecord{
		Recipient: "56912345678",
		FileID:    "media-abc",
		FileName:  "cedula.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, FILE_STATUS_PENDING, first.UploadStatus)

	// mesma entrega, segundo webhook: reutiliza a linha
	second, err := UpsertFileRecord(db, FileRecord{
		Recipient: "56912345678",
		FileID:    "media-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int
	db.Model(&FileRecord{}).Where("file_id = ?", "media-abc").Count(&count)
	assert.Equal(t, 1, count)
}

func TestUpdateFileRecordFields(t *testing.T) {
	db := openTestDB(t)

	rec, err := UpsertFileRecord(db, FileRecord{Recipient: "56912345678", FileID: "media-xyz"})
	require.NoError(t, err)

	require.NoError(t, UpdateFileRecordFields(db, rec.ID, map[string]any{
		"upload_status": FILE_STATUS_UPLOADED,
		"download_url":  "https://download.example/x",
	}))

	got, err := FindFileRecordByFileID(db, "media-xyz")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, FILE_STATUS_UPLOADED, got.UploadStatus)
	assert.Equal(t, "https://download.example/x", got.DownloadURL)
	// campos não tocados permanecem
	assert.Equal(t, "56912345678", got.Recipient)
}

func TestFindFileRecordByFileIDMiss(t *testing.T) {
	db := openTestDB(t)

	got, err := FindFileRecordByFileID(db, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
