package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "tavolo/infras/otel/mocks"
	"tavolo/internal/domains/availability/service"
	reservationMocks "tavolo/internal/domains/reservation/mocks"
	reservationModel "tavolo/internal/domains/reservation/model"
	tableMocks "tavolo/internal/domains/table/mocks"
	tableModel "tavolo/internal/domains/table/model"
	"tavolo/shared/timezone"
)

type availabilityFixture struct {
	reservationRepo *reservationMocks.MockReservation
	tableRepo       *tableMocks.MockTable
	svc             service.Availability
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &availabilityFixture{
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		tableRepo:       tableMocks.NewMockTable(ctrl),
	}

	f.svc = service.New(f.reservationRepo, f.tableRepo, otelMocks.NewOtel())

	return f
}

func TestAvailabilityService_IsAvailable(t *testing.T) {
	date := timezone.Today().AddDate(0, 0, 1)
	tableIDs := []string{"t-1", "t-2"}

	slotsAt := func(times ...string) []reservationModel.BookedSlot {
		slots := make([]reservationModel.BookedSlot, len(times))
		for i, at := range times {
			slots[i] = reservationModel.BookedSlot{TableID: "t-1", ReservationTime: at}
		}

		return slots
	}

	tests := []struct {
		name          string
		requestedTime string
		slots         []reservationModel.BookedSlot
		want          bool
	}{
		{
			name:          "no bookings at all",
			requestedTime: "19:00",
			slots:         nil,
			want:          true,
		},
		{
			name:          "same minute on the same table conflicts",
			requestedTime: "19:00",
			slots:         slotsAt("19:00"),
			want:          false,
		},
		{
			name:          "one minute inside the window conflicts",
			requestedTime: "19:00",
			slots:         slotsAt("17:01"),
			want:          false,
		},
		{
			name:          "exactly two hours before is allowed",
			requestedTime: "19:00",
			slots:         slotsAt("17:00"),
			want:          true,
		},
		{
			name:          "exactly two hours after is allowed",
			requestedTime: "19:00",
			slots:         slotsAt("21:00"),
			want:          true,
		},
		{
			name:          "119 minutes after conflicts",
			requestedTime: "19:00",
			slots:         slotsAt("20:59"),
			want:          false,
		},
		{
			name:          "booking on another table does not conflict",
			requestedTime: "19:00",
			slots: []reservationModel.BookedSlot{
				{TableID: "t-9", ReservationTime: "19:00"},
			},
			want: true,
		},
		{
			name:          "seconds from a time column are tolerated",
			requestedTime: "19:00",
			slots:         slotsAt("18:30:00"),
			want:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAvailabilityFixture(t)

			f.reservationRepo.EXPECT().
				ListBookedSlots(gomock.Any(), date, tableIDs).
				Return(tt.slots, nil)

			got, err := f.svc.IsAvailable(t.Context(), tableIDs, date, tt.requestedTime)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty table list is vacuously available", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		got, err := f.svc.IsAvailable(t.Context(), nil, date, "19:00")

		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		f.reservationRepo.EXPECT().
			ListBookedSlots(gomock.Any(), date, tableIDs).
			Return(nil, errors.New("connection refused"))

		_, err := f.svc.IsAvailable(t.Context(), tableIDs, date, "19:00")

		assert.Error(t, err)
	})

	t.Run("invalid requested time is rejected", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		_, err := f.svc.IsAvailable(t.Context(), tableIDs, date, "not-a-time")

		assert.Error(t, err)
	})
}

func TestAvailabilityService_GetAvailableTables(t *testing.T) {
	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tables := []tableModel.Table{
		{ID: "t-1", TableNumber: "T1", Capacity: 2, Available: true},
		{ID: "t-2", TableNumber: "T2", Capacity: 4, Available: true},
		{ID: "t-3", TableNumber: "T3", Capacity: 6, Available: true},
	}

	t.Run("filters out tables booked within the window", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		f.tableRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tables, nil)
		f.reservationRepo.EXPECT().ListBookedSlots(gomock.Any(), date, nil).Return([]reservationModel.BookedSlot{
			{TableID: "t-2", ReservationTime: "18:30"},
			{TableID: "t-3", ReservationTime: "16:00"},
		}, nil)

		got, err := f.svc.GetAvailableTables(t.Context(), date, "19:00")

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "t-1", got[0].ID)
		assert.Equal(t, "t-3", got[1].ID)
	})

	t.Run("keeps every table when nothing is booked", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		f.tableRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tables, nil)
		f.reservationRepo.EXPECT().ListBookedSlots(gomock.Any(), date, nil).Return(nil, nil)

		got, err := f.svc.GetAvailableTables(t.Context(), date, "19:00")

		assert.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("invalid time is rejected before touching the stores", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		_, err := f.svc.GetAvailableTables(t.Context(), date, "25:99")

		assert.Error(t, err)
	})
}
