package models

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.AutoMigrate(&Person{}, &FileRecord{})
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFindPersonByPhoneToleratesSeparators(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&Person{Name: "Maria Jose Perez", Phone: "+56 9 1234 5678"}).Error)

	variants := []string{
		"56912345678",
		"+56912345678",
		"+56 9 1234 5678",
		"56-9-1234-5678",
	}
	for _, v := range variants {
		p, err := FindPersonByPhone(db, v)
		require.NoError(t, err, "variant %q", v)
		require.NotNil(t, p, "variant %q", v)
		assert.Equal(t, "Maria Jose Perez", p.Name)
	}
}

func TestFindPersonByPhoneMissIsNotAnError(t *testing.T) {
	db := openTestDB(t)

	p, err := FindPersonByPhone(db, "56900000000")
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = FindPersonByPhone(db, "")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestPersonBeforeSaveNormalizes(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&Person{Name: "Juan Soto", Phone: "(56) 9.8765.4321"}).Error)

	var p Person
	require.NoError(t, db.Where("name = ?", "Juan Soto").First(&p).Error)
	assert.Equal(t, "56987654321", p.PhoneDigits)
}
