package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	"github.com/smallbiznis/facturae/pkg/db/option"
	"github.com/smallbiznis/facturae/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	partyrepo repository.Repository[partydomain.Party]
}

func NewService(p ServiceParam) partydomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("party.service"),

		partyrepo: repository.ProvideStore[partydomain.Party](p.DB),
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (partydomain.Party, error) {
	partyID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return partydomain.Party{}, partydomain.ErrInvalidPartyID
	}

	item, err := s.partyrepo.FindOne(ctx, &partydomain.Party{ID: partyID},
		option.WithPreload("Addresses"),
		option.WithPreload("BankAccounts"),
	)
	if err != nil {
		return partydomain.Party{}, err
	}
	if item == nil {
		return partydomain.Party{}, partydomain.ErrPartyNotFound
	}

	return *item, nil
}

func (s *Service) UpdateFacturaeFields(ctx context.Context, id string, req partydomain.UpdateFacturaeFieldsRequest) (partydomain.Party, error) {
	if req.PersonType != nil && !req.PersonType.Valid() {
		return partydomain.Party{}, partydomain.ErrInvalidPersonType
	}
	if req.ResidenceType != nil && !req.ResidenceType.Valid() {
		return partydomain.Party{}, partydomain.ErrInvalidResidence
	}

	party, err := s.GetByID(ctx, id)
	if err != nil {
		return partydomain.Party{}, err
	}

	updates := map[string]any{}
	if req.PersonType != nil {
		updates["person_type"] = *req.PersonType
		party.PersonType = *req.PersonType
	}
	if req.ResidenceType != nil {
		updates["residence_type"] = *req.ResidenceType
		party.ResidenceType = *req.ResidenceType
	}
	if len(updates) == 0 {
		return party, nil
	}

	if err := s.partyrepo.Update(ctx, party.ID.String(), updates); err != nil {
		return partydomain.Party{}, err
	}
	return party, nil
}
