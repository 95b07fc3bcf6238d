package models

import (
	"time"

	"marketbot/tools"

	"github.com/jinzhu/gorm"
)

// Person representa um contato conhecido, usado só para personalizar respostas.
// Leitura apenas: este sistema nunca cria nem altera pessoas.
type Person struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Phone       string     `gorm:"not null;index" json:"phone"`
	PhoneDigits string     `gorm:"column:phone_digits;index" json:"phone_digits"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// BeforeSave mantém a coluna normalizada em sincronia com Phone.
func (p *Person) BeforeSave() error {
	p.PhoneDigits = tools.NormalizePhoneDigits(p.Phone)
	return nil
}

// FindPersonByPhone busca pela forma normalizada do telefone, tolerando
// '+' inicial e separadores. Não encontrar não é erro: devolve nil, nil.
func FindPersonByPhone(db *gorm.DB, phone string) (*Person, error) {
	digits := tools.NormalizePhoneDigits(phone)
	if digits == "" {
		return nil, nil
	}

	var p Person
	err := db.Where("phone_digits = ?", digits).First(&p).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
