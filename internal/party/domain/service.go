package domain

import (
	"context"
	"errors"
)

// UpdateFacturaeFieldsRequest sets the document classification fields.
type UpdateFacturaeFieldsRequest struct {
	PersonType    *PersonType    `json:"person_type"`
	ResidenceType *ResidenceType `json:"residence_type"`
}

type Service interface {
	GetByID(ctx context.Context, id string) (Party, error)
	UpdateFacturaeFields(ctx context.Context, id string, req UpdateFacturaeFieldsRequest) (Party, error)
}

var (
	ErrPartyNotFound     = errors.New("party_not_found")
	ErrInvalidPartyID    = errors.New("invalid_party_id")
	ErrInvalidPersonType = errors.New("invalid_person_type")
	ErrInvalidResidence  = errors.New("invalid_residence_type")
)
