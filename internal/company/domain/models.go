// Package domain contains the issuing company model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
)

// Company is the invoice issuer. Its identity data and bank accounts live on
// the linked party record; the company row adds the signing material.
type Company struct {
	ID      snowflake.ID      `gorm:"primaryKey"`
	PartyID snowflake.ID      `gorm:"not null;index"`
	Party   partydomain.Party `gorm:"foreignKey:PartyID"`

	// FacturaeCertificate is the PKCS#12 bundle handed to the signer.
	FacturaeCertificate []byte `gorm:"column:facturae_certificate"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Company) TableName() string { return "companies" }

// HasCertificate reports whether signing material is configured.
func (c *Company) HasCertificate() bool {
	return c != nil && len(c.FacturaeCertificate) > 0
}
