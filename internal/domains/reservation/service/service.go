package service

import (
	"context"
	"fmt"
	"time"

	"tavolo/config"
	"tavolo/infras/kafka"
	"tavolo/infras/otel"
	availabilityService "tavolo/internal/domains/availability/service"
	"tavolo/internal/domains/reservation/model"
	"tavolo/internal/domains/reservation/model/dto"
	"tavolo/internal/domains/reservation/repository"
	tableModel "tavolo/internal/domains/table/model"
	tableRepository "tavolo/internal/domains/table/repository"
	"tavolo/shared"
	"tavolo/shared/cache"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	"tavolo/shared/failure"
	"tavolo/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	defaultDailyCap = 50

	discountMinCompleted = 3
	discountPercentage   = 20

	EventReservationCreated = "reservation.created"
	EventReservationUpdated = "reservation.updated"
	EventReservationDeleted = "reservation.deleted"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (string, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetCustomerStatistics(ctx context.Context, email string) (dto.CustomerStatisticsResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	tableRepo    tableRepository.Table
	availability availabilityService.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	broker       kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	tableRepo tableRepository.Table,
	availability availabilityService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	broker kafka.Client,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		tableRepo:    tableRepo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		broker:       broker,
		otel:         otel,
	}
}

// Create runs the admission pipeline in order: guest count, date not in the
// past, daily cap, table existence, conflict window. The first failed check
// wins; persistence happens only when every check passes.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.NumberOfGuests <= 0 {
		return constant.Empty, failure.BadRequestFromString("number of guests must be greater than zero") // nolint:wrapcheck
	}

	date, err := timezone.Parse(constant.DateFormat, req.ReservationDate)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("invalid reservation date") // nolint:wrapcheck
	}

	if date.Before(timezone.Today()) {
		return constant.Empty, failure.BadRequestFromString("reservation date cannot be in the past") // nolint:wrapcheck
	}

	if err = s.checkDailyCap(ctx, date); err != nil {
		return constant.Empty, err
	}

	if err = s.checkTablesExist(ctx, req.TableIDs); err != nil {
		return constant.Empty, err
	}

	available, err := s.availability.IsAvailable(ctx, req.TableIDs, date, req.ReservationTime)
	if err != nil {
		log.Error().Err(err).Msg("failed to check table availability")

		return constant.Empty, fmt.Errorf("failed to check table availability: %w", err)
	}

	if !available {
		return constant.Empty, failure.Conflict("one or more tables are already reserved within two hours of the requested time") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyActor).(string)

	reservation := req.ToModel(actor)
	links := dto.ToLinks(reservation.ID, req.TableIDs, actor)

	if err = s.repo.CreateWithTables(ctx, reservation, links); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return constant.Empty, fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)

		s.publishEvent(c, EventReservationCreated, reservation)
	}()

	return reservation.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if params.SortBy == constant.Empty {
		// Newest day first, latest slot first within the day.
		params.SortBy = model.FieldReservationDate + " " + gDto.SortDirDesc + ", " + model.FieldReservationTime
		params.SortDir = gDto.SortDirDesc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	if err = s.hydrateTableIDs(ctx, reservations); err != nil {
		return res, err
	}

	res.FromModels(reservations, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	reservation.TableIDs, err = s.repo.GetTableIDs(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation table ids")

		return res, fmt.Errorf("failed to get reservation table ids: %w", err)
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// Update overwrites every scalar column and replaces the table links. It
// deliberately skips the admission checks; an update can move a reservation
// past the daily cap or into a conflicting slot.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err = s.checkTablesExist(ctx, req.TableIDs); err != nil {
		return err
	}

	actor, _ := ctx.Value(constant.ContextKeyActor).(string)

	fields := req.ToFields(actor)
	links := dto.ToLinks(id, req.TableIDs, actor)

	if err = s.repo.UpdateWithTables(ctx, fields, id, links); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)

		s.publishEvent(c, EventReservationUpdated, model.Reservation{
			ID:            id,
			CustomerEmail: req.CustomerEmail,
			TableIDs:      req.TableIDs,
		})
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err = s.repo.DeleteWithTables(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)

		s.publishEvent(c, EventReservationDeleted, model.Reservation{ID: id})
	}()

	return nil
}

// GetCustomerStatistics is never cached; eligibility must reflect the
// current completed count.
func (s *serviceImpl) GetCustomerStatistics(ctx context.Context, email string) (res dto.CustomerStatisticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomerStatistics")
	defer scope.End()
	defer scope.TraceIfError(err)

	completed, err := s.repo.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCustomerEmail,
				Value:    email,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCompleted,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count completed reservations")

		return res, fmt.Errorf("failed to count completed reservations: %w", err)
	}

	res.CustomerEmail = email
	res.CompletedReservations = completed
	res.IsEligibleForDiscount = completed >= discountMinCompleted

	if res.IsEligibleForDiscount {
		res.DiscountPercentage = discountPercentage
	}

	return res, nil
}

func (s *serviceImpl) checkDailyCap(ctx context.Context, date time.Time) error {
	dailyCap := s.cfg.App.Reservation.DailyCap
	if dailyCap <= 0 {
		dailyCap = defaultDailyCap
	}

	// The cap counts every reservation on the date, cancelled included.
	count, err := s.repo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations for date")

		return fmt.Errorf("failed to count reservations for date: %w", err)
	}

	if count >= dailyCap {
		return failure.Conflict("daily reservation limit reached") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) checkTablesExist(ctx context.Context, tableIDs []string) error {
	// A reservation without tables is allowed; there is nothing to check.
	if len(tableIDs) == 0 {
		return nil
	}

	count, err := s.tableRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldID,
				Value:    tableIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    tableModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return fmt.Errorf("failed to count tables: %w", err)
	}

	if count != len(tableIDs) {
		return failure.BadRequestFromString("one or more tables do not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) hydrateTableIDs(ctx context.Context, reservations []model.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]string, len(reservations))
	for i, reservation := range reservations {
		ids[i] = reservation.ID
	}

	tableIDs, err := s.repo.ListTableIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservation table ids")

		return fmt.Errorf("failed to list reservation table ids: %w", err)
	}

	for i := range reservations {
		reservations[i].TableIDs = tableIDs[reservations[i].ID]
	}

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, action string, reservation model.Reservation) {
	event := dto.ReservationEvent{
		Action:        action,
		ReservationID: reservation.ID,
		CustomerEmail: reservation.CustomerEmail,
		TableIDs:      reservation.TableIDs,
		OccurredAt:    timezone.Now().Format(constant.TimestampFormat),
	}

	if !reservation.ReservationDate.IsZero() {
		event.Date = reservation.ReservationDate.Format(constant.DateFormat)
		event.Time = reservation.ReservationTime
	}

	message := kafka.Message{
		Key:   reservation.ID,
		Value: event,
	}

	if err := s.broker.SendMessages(ctx, s.cfg.Kafka.Topic.Reservation, message); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to publish reservation event")
	}
}
