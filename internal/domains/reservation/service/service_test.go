package service_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tavolo/config"
	kafkaMocks "tavolo/infras/kafka/mocks"
	otelMocks "tavolo/infras/otel/mocks"
	availabilityMocks "tavolo/internal/domains/availability/mocks"
	reservationMocks "tavolo/internal/domains/reservation/mocks"
	"tavolo/internal/domains/reservation/model"
	"tavolo/internal/domains/reservation/model/dto"
	"tavolo/internal/domains/reservation/service"
	tableMocks "tavolo/internal/domains/table/mocks"
	cacheMocks "tavolo/shared/cache/mocks"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	"tavolo/shared/failure"
	gModel "tavolo/shared/model"
	"tavolo/shared/timezone"

	goRedis "github.com/redis/go-redis/v9"
)

type reservationFixture struct {
	repo         *reservationMocks.MockReservation
	tableRepo    *tableMocks.MockTable
	availability *availabilityMocks.MockAvailability
	cache        *cacheMocks.MockRedisCache
	broker       *kafkaMocks.MockClient
	cfg          *config.Config
	svc          service.Reservation
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &reservationFixture{
		repo:         reservationMocks.NewMockReservation(ctrl),
		tableRepo:    tableMocks.NewMockTable(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		broker:       kafkaMocks.NewMockClient(ctrl),
		cfg:          &config.Config{},
	}

	f.svc = service.New(f.repo, f.tableRepo, f.availability, f.cfg, f.cache, f.broker, otelMocks.NewOtel())

	return f
}

func (f *reservationFixture) allowAsyncSideEffects() {
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.broker.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func validCreateRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+39055123456",
		ReservationDate: timezone.Today().AddDate(0, 0, 7).Format(constant.DateFormat),
		ReservationTime: "19:00",
		NumberOfGuests:  4,
		TableIDs:        []string{"11111111-1111-4111-8111-111111111111", "22222222-2222-4222-8222-222222222222"},
		SpecialRequests: "window seat",
	}
}

func TestReservationService_Create(t *testing.T) {
	t.Run("successful creation returns the new id", func(t *testing.T) {
		f := newReservationFixture(t)
		f.allowAsyncSideEffects()

		req := validCreateRequest()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(10, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(req.TableIDs), nil)
		f.availability.EXPECT().IsAvailable(gomock.Any(), req.TableIDs, gomock.Any(), req.ReservationTime).Return(true, nil)
		f.repo.EXPECT().
			CreateWithTables(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, reservation model.Reservation, links []model.ReservationTable) error {
				assert.NotEmpty(t, reservation.ID)
				assert.Equal(t, model.StatusPending, reservation.Status)
				assert.Len(t, links, len(req.TableIDs))

				for i, link := range links {
					assert.Equal(t, reservation.ID, link.ReservationID)
					assert.Equal(t, req.TableIDs[i], link.TableID)
				}

				return nil
			})

		id, err := f.svc.Create(t.Context(), req)

		assert.NoError(t, err)
		assert.NotEmpty(t, id)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("a reservation without tables is admitted", func(t *testing.T) {
		f := newReservationFixture(t)
		f.allowAsyncSideEffects()

		req := validCreateRequest()
		req.TableIDs = nil

		// No table repository expectation is registered; with nothing to
		// look up, the existence check must not run at all.
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.availability.EXPECT().IsAvailable(gomock.Any(), gomock.Nil(), gomock.Any(), req.ReservationTime).Return(true, nil)
		f.repo.EXPECT().
			CreateWithTables(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, reservation model.Reservation, links []model.ReservationTable) error {
				assert.NotEmpty(t, reservation.ID)
				assert.Empty(t, links)

				return nil
			})

		id, err := f.svc.Create(t.Context(), req)

		assert.NoError(t, err)
		assert.NotEmpty(t, id)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("zero guests is rejected before any repository call", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validCreateRequest()
		req.NumberOfGuests = 0

		_, err := f.svc.Create(t.Context(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("negative guests is rejected", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validCreateRequest()
		req.NumberOfGuests = -2

		_, err := f.svc.Create(t.Context(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("past date is rejected", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validCreateRequest()
		req.ReservationDate = timezone.Today().AddDate(0, 0, -1).Format(constant.DateFormat)

		_, err := f.svc.Create(t.Context(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("today is accepted as a reservation date", func(t *testing.T) {
		f := newReservationFixture(t)
		f.allowAsyncSideEffects()

		req := validCreateRequest()
		req.ReservationDate = timezone.Today().Format(constant.DateFormat)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(req.TableIDs), nil)
		f.availability.EXPECT().IsAvailable(gomock.Any(), req.TableIDs, gomock.Any(), req.ReservationTime).Return(true, nil)
		f.repo.EXPECT().CreateWithTables(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(t.Context(), req)

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("daily cap reached is a conflict", func(t *testing.T) {
		f := newReservationFixture(t)
		f.cfg.App.Reservation.DailyCap = 2

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)

		_, err := f.svc.Create(t.Context(), validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("one below the cap is admitted", func(t *testing.T) {
		f := newReservationFixture(t)
		f.allowAsyncSideEffects()
		f.cfg.App.Reservation.DailyCap = 2

		req := validCreateRequest()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(req.TableIDs), nil)
		f.availability.EXPECT().IsAvailable(gomock.Any(), req.TableIDs, gomock.Any(), req.ReservationTime).Return(true, nil)
		f.repo.EXPECT().CreateWithTables(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(t.Context(), req)

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown table id is rejected", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validCreateRequest()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(req.TableIDs)-1, nil)

		_, err := f.svc.Create(t.Context(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("conflicting slot is a conflict", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validCreateRequest()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(req.TableIDs), nil)
		f.availability.EXPECT().IsAvailable(gomock.Any(), req.TableIDs, gomock.Any(), req.ReservationTime).Return(false, nil)

		_, err := f.svc.Create(t.Context(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("store failure surfaces as an internal error", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validCreateRequest()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(req.TableIDs), nil)
		f.availability.EXPECT().IsAvailable(gomock.Any(), req.TableIDs, gomock.Any(), req.ReservationTime).Return(true, nil)
		f.repo.EXPECT().CreateWithTables(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(t.Context(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestReservationService_Get(t *testing.T) {
	reservation := model.Reservation{
		ID:              "res-1",
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+39055123456",
		ReservationDate: timezone.Today().AddDate(0, 0, 3),
		ReservationTime: "19:00",
		NumberOfGuests:  4,
		Status:          model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	t.Run("found reservation carries its table ids", func(t *testing.T) {
		f := newReservationFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(goRedis.Nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation, nil)
		f.repo.EXPECT().GetTableIDs(gomock.Any(), reservation.ID).Return([]string{"t-1", "t-2"}, nil)

		res, err := f.svc.Get(t.Context(), reservation.ID)

		assert.NoError(t, err)
		assert.Equal(t, reservation.ID, res.ID)
		assert.Equal(t, []string{"t-1", "t-2"}, res.TableIDs)
		assert.Equal(t, reservation.ReservationDate.Format(constant.DateFormat), res.ReservationDate)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		f := newReservationFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(goRedis.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.svc.Get(t.Context(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newReservationFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ string, value any) error {
				res, ok := value.(*dto.ReservationResponse)
				assert.True(t, ok)
				res.ID = "cached-id"

				return nil
			})

		res, err := f.svc.Get(t.Context(), "cached-id")

		assert.NoError(t, err)
		assert.Equal(t, "cached-id", res.ID)
	})
}

func TestReservationService_GetAll(t *testing.T) {
	t.Run("lists reservations with hydrated table ids", func(t *testing.T) {
		f := newReservationFixture(t)

		reservations := []model.Reservation{
			{ID: "res-1", ReservationDate: timezone.Today(), ReservationTime: "19:00"},
			{ID: "res-2", ReservationDate: timezone.Today(), ReservationTime: "12:30"},
		}

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(goRedis.Nil).Times(2)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(reservations, nil)
		f.repo.EXPECT().ListTableIDs(gomock.Any(), []string{"res-1", "res-2"}).Return(map[string][]string{
			"res-1": {"t-1"},
			"res-2": {"t-2", "t-3"},
		}, nil)

		res, err := f.svc.GetAll(t.Context(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Len(t, res.Reservations, 2)
		assert.Equal(t, []string{"t-1"}, res.Reservations[0].TableIDs)
		assert.Equal(t, []string{"t-2", "t-3"}, res.Reservations[1].TableIDs)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestReservationService_Update(t *testing.T) {
	validUpdate := dto.UpdateReservationRequest{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+39055123456",
		ReservationDate: timezone.Today().AddDate(0, 0, -30).Format(constant.DateFormat),
		ReservationTime: "20:00",
		NumberOfGuests:  2,
		Status:          model.StatusCompleted,
		TableIDs:        []string{"11111111-1111-4111-8111-111111111111"},
	}

	t.Run("update overwrites without rechecking cap or availability", func(t *testing.T) {
		f := newReservationFixture(t)
		f.allowAsyncSideEffects()

		// The date above is in the past and no cap or availability
		// expectations are registered; the update must still succeed.
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(validUpdate.TableIDs), nil)
		f.repo.EXPECT().
			UpdateWithTables(gomock.Any(), gomock.Any(), "res-1", gomock.Any()).
			DoAndReturn(func(_ any, fields map[string]any, id string, links []model.ReservationTable) error {
				assert.Equal(t, validUpdate.Status, fields[model.FieldStatus])
				assert.Equal(t, validUpdate.ReservationTime, fields[model.FieldReservationTime])
				assert.Len(t, links, 1)
				assert.Equal(t, id, links[0].ReservationID)

				return nil
			})

		err := f.svc.Update(t.Context(), validUpdate, "res-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown reservation is not found", func(t *testing.T) {
		f := newReservationFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(t.Context(), validUpdate, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown table id is rejected", func(t *testing.T) {
		f := newReservationFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.tableRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

		err := f.svc.Update(t.Context(), validUpdate, "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_Delete(t *testing.T) {
	t.Run("deletes reservation and its links", func(t *testing.T) {
		f := newReservationFixture(t)
		f.allowAsyncSideEffects()

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().DeleteWithTables(gomock.Any(), "res-1").Return(nil)

		err := f.svc.Delete(t.Context(), "res-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown reservation is not found", func(t *testing.T) {
		f := newReservationFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(t.Context(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservationService_GetCustomerStatistics(t *testing.T) {
	tests := []struct {
		name         string
		completed    int
		wantEligible bool
		wantDiscount int
	}{
		{name: "no completed reservations", completed: 0, wantEligible: false, wantDiscount: 0},
		{name: "two completed reservations", completed: 2, wantEligible: false, wantDiscount: 0},
		{name: "three completed reservations", completed: 3, wantEligible: true, wantDiscount: 20},
		{name: "many completed reservations", completed: 12, wantEligible: true, wantDiscount: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReservationFixture(t)

			f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(tt.completed, nil)

			res, err := f.svc.GetCustomerStatistics(t.Context(), "ada@example.com")

			assert.NoError(t, err)
			assert.Equal(t, "ada@example.com", res.CustomerEmail)
			assert.Equal(t, tt.completed, res.CompletedReservations)
			assert.Equal(t, tt.wantEligible, res.IsEligibleForDiscount)
			assert.Equal(t, tt.wantDiscount, res.DiscountPercentage)
		})
	}
}
