package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"tavolo/infras/otel"
	"tavolo/infras/postgres"
	"tavolo/internal/domains/reservation/model"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	"tavolo/shared/logger"
	gRepo "tavolo/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	CreateWithTables(ctx context.Context, reservation model.Reservation, links []model.ReservationTable) error
	UpdateWithTables(ctx context.Context, fields map[string]any, id string, links []model.ReservationTable) error
	DeleteWithTables(ctx context.Context, id string) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetTableIDs(ctx context.Context, reservationID string) ([]string, error)
	ListTableIDs(ctx context.Context, reservationIDs []string) (map[string][]string, error)
	ListBookedSlots(ctx context.Context, date time.Time, tableIDs []string) ([]model.BookedSlot, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	linkRepo gRepo.Repository[model.ReservationTable]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		linkRepo:   gRepo.NewRepository[model.ReservationTable](model.LinkEntityName, model.LinkTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) CreateWithTables(ctx context.Context, reservation model.Reservation, links []model.ReservationTable) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateWithTables")
	defer scope.End()

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, reservation); err != nil {
			return err
		}

		return r.linkRepo.InsertBulkTx(ctx, tx, links)
	})
}

func (r *repositoryImpl) UpdateWithTables(ctx context.Context, fields map[string]any, id string, links []model.ReservationTable) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.UpdateWithTables")
	defer scope.End()

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.UpdateTx(ctx, tx, fields, filterByReservation(model.FieldID, model.TableName, id)); err != nil {
			return err
		}

		if err := r.linkRepo.DeleteTx(ctx, tx, filterByReservation(model.FieldReservationID, model.LinkTableName, id)); err != nil {
			return err
		}

		return r.linkRepo.InsertBulkTx(ctx, tx, links)
	})
}

func (r *repositoryImpl) DeleteWithTables(ctx context.Context, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.DeleteWithTables")
	defer scope.End()

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.linkRepo.DeleteTx(ctx, tx, filterByReservation(model.FieldReservationID, model.LinkTableName, id)); err != nil {
			return err
		}

		return r.DeleteTx(ctx, tx, filterByReservation(model.FieldID, model.TableName, id))
	})
}

func (r *repositoryImpl) GetTableIDs(ctx context.Context, reservationID string) (ids []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetTableIDs")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT table_id FROM %s WHERE reservation_id = :reservation_id ORDER BY created_at", model.LinkTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.LinkEntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &ids, map[string]any{model.FieldReservationID: reservationID})
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get table ids (%s): %w", model.LinkEntityName, err)
	}

	return ids, nil
}

func (r *repositoryImpl) ListTableIDs(ctx context.Context, reservationIDs []string) (res map[string][]string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListTableIDs")
	defer scope.End()
	defer scope.TraceIfError(err)

	res = make(map[string][]string, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return res, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT reservation_id, table_id FROM %s WHERE reservation_id IN (?) ORDER BY created_at", model.LinkTableName),
		reservationIDs,
	)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to build query (%s): %w", model.LinkEntityName, err)
	}

	query = r.db.Read.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var links []model.ReservationTable

	err = r.db.Read.SelectContext(ctx, &links, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list table ids (%s): %w", model.LinkEntityName, err)
	}

	for _, link := range links {
		res[link.ReservationID] = append(res[link.ReservationID], link.TableID)
	}

	return res, nil
}

func (r *repositoryImpl) ListBookedSlots(ctx context.Context, date time.Time, tableIDs []string) (slots []model.BookedSlot, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListBookedSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT rt.table_id, r.reservation_time FROM %s rt JOIN %s r ON r.id = rt.reservation_id WHERE r.reservation_date = ? AND r.status <> ?",
		model.LinkTableName, model.TableName,
	)
	args := []any{date, model.StatusCancelled}

	if len(tableIDs) > 0 {
		query, args, err = sqlx.In(query+" AND rt.table_id IN (?)", date, model.StatusCancelled, tableIDs)
		if err != nil {
			logger.ErrorWithStack(err)

			return nil, fmt.Errorf("failed to build query (%s): %w", model.EntityName, err)
		}
	}

	query = r.db.Read.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Read.SelectContext(ctx, &slots, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list booked slots (%s): %w", model.EntityName, err)
	}

	return slots, nil
}

func (r *repositoryImpl) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

func filterByReservation(field, table, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
