package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"atelier/config"
	"atelier/infras/otel"
	customerModel "atelier/internal/domains/customer/model"
	customerRepo "atelier/internal/domains/customer/repository"
	"atelier/internal/domains/invite/model/dto"
	"atelier/internal/domains/invite/repository"
	studioModel "atelier/internal/domains/studio/model"
	studioRepo "atelier/internal/domains/studio/repository"
	"atelier/shared"
	"atelier/shared/cache"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	"atelier/shared/failure"
	"atelier/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllInvite = "invite:gets"
	cacheCountInvite  = "invite:count"
)

const shortHashBytes = 8

type Invite interface {
	Create(ctx context.Context, req dto.CreateInviteRequest) (dto.InviteResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvitesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo      repository.Invite
	studios   studioRepo.Studio
	customers customerRepo.Customer
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Invite, studios studioRepo.Studio, customers customerRepo.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Invite {
	return &serviceImpl{
		repo:      repo,
		studios:   studios,
		customers: customers,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInviteRequest) (res dto.InviteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.studios.Exist(ctx, shared.FilterByID(req.StudioID, studioModel.FieldID, studioModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check studio existence")

		return res, fmt.Errorf("failed to check studio existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("studio not found")
	}

	customer, err := s.customers.Get(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty || customer.StudioID != req.StudioID {
		return res, failure.NotFound("customer not found")
	}

	shortHash, err := newShortHash()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate invite hash")

		return res, fmt.Errorf("failed to generate invite hash: %w", err)
	}

	ttl := time.Duration(s.cfg.Booking.Invite.TTLDays) * constant.HoursPerDay * time.Hour
	invite := req.ToModel(shortHash, user, timezone.Now().Add(ttl))

	if err = s.repo.Insert(ctx, invite); err != nil {
		return res, err
	}

	res.FromModel(invite)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllInvite)
		shared.InvalidateCaches(c, s.cache, cacheCountInvite)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvitesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInvite, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invites")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invites")

		return res, fmt.Errorf("failed to count invites: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invites")

		return res, fmt.Errorf("failed to get invites: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invites to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountInvite, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invite count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invites")

		return res, fmt.Errorf("failed to count invites: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invite count to cache")
		}
	}()

	return res, nil
}

// newShortHash returns the URL token customers follow; short enough to share,
// random enough to not be guessable.
func newShortHash() (string, error) {
	buf := make([]byte, shortHashBytes)

	if _, err := rand.Read(buf); err != nil {
		return constant.Empty, fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
