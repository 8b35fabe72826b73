package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"tavolo/infras/otel"
	reservationModel "tavolo/internal/domains/reservation/model"
	reservationRepository "tavolo/internal/domains/reservation/repository"
	tableModel "tavolo/internal/domains/table/model"
	tableRepository "tavolo/internal/domains/table/repository"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	"tavolo/shared/failure"

	"github.com/rs/zerolog/log"
)

// conflictWindowMinutes is the half-width of the occupancy window around a
// booking. Two bookings on the same table conflict when they are strictly
// closer than this; a gap of exactly 120 minutes is allowed.
const conflictWindowMinutes = 120

type Availability interface {
	IsAvailable(ctx context.Context, tableIDs []string, date time.Time, timeOfDay string) (bool, error)
	GetAvailableTables(ctx context.Context, date time.Time, timeOfDay string) ([]tableModel.Table, error)
}

type serviceImpl struct {
	reservationRepo reservationRepository.Reservation
	tableRepo       tableRepository.Table
	otel            otel.Otel
}

func New(reservationRepo reservationRepository.Reservation, tableRepo tableRepository.Table, otel otel.Otel) Availability {
	return &serviceImpl{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		otel:            otel,
	}
}

func (s *serviceImpl) IsAvailable(ctx context.Context, tableIDs []string, date time.Time, timeOfDay string) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(tableIDs) == 0 {
		return true, nil
	}

	requested, err := minutesOfDay(timeOfDay)
	if err != nil {
		return false, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	slots, err := s.reservationRepo.ListBookedSlots(ctx, date, tableIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to list booked slots")

		return false, fmt.Errorf("failed to list booked slots: %w", err)
	}

	conflicted, err := conflictingTables(slots, requested)
	if err != nil {
		return false, err
	}

	for _, id := range tableIDs {
		if conflicted[id] {
			return false, nil
		}
	}

	return true, nil
}

func (s *serviceImpl) GetAvailableTables(ctx context.Context, date time.Time, timeOfDay string) (res []tableModel.Table, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailableTables")
	defer scope.End()
	defer scope.TraceIfError(err)

	requested, err := minutesOfDay(timeOfDay)
	if err != nil {
		return nil, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	params := gDto.QueryParams{
		SortBy:  tableModel.FieldTableNumber,
		SortDir: gDto.SortDirAsc,
	}
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldAvailable,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    tableModel.TableName,
			},
		},
	}

	tables, err := s.tableRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return nil, fmt.Errorf("failed to get tables: %w", err)
	}

	slots, err := s.reservationRepo.ListBookedSlots(ctx, date, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to list booked slots")

		return nil, fmt.Errorf("failed to list booked slots: %w", err)
	}

	conflicted, err := conflictingTables(slots, requested)
	if err != nil {
		return nil, err
	}

	res = make([]tableModel.Table, 0, len(tables))

	for _, table := range tables {
		if !conflicted[table.ID] {
			res = append(res, table)
		}
	}

	return res, nil
}

func conflictingTables(slots []reservationModel.BookedSlot, requested int) (map[string]bool, error) {
	conflicted := make(map[string]bool, len(slots))

	for _, slot := range slots {
		booked, err := minutesOfDay(slot.ReservationTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse booked slot time: %w", err)
		}

		delta := requested - booked
		if delta < 0 {
			delta = -delta
		}

		if delta < conflictWindowMinutes {
			conflicted[slot.TableID] = true
		}
	}

	return conflicted, nil
}

// minutesOfDay parses a time of day into minutes since midnight. Accepts
// both HH:MM and the HH:MM:SS form a TIME column scans back as.
func minutesOfDay(value string) (int, error) {
	var hour, minute, second int

	n, err := fmt.Sscanf(value, "%d:%d:%d", &hour, &minute, &second)
	if err != nil && n < 2 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}

	return hour*60 + minute, nil
}
