package dto_test

import (
	"tavolo/internal/domains/reservation/model"
	"tavolo/internal/domains/reservation/model/dto"
	"tavolo/shared/constant"
	"testing"
	"time"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+39055123456",
		ReservationDate: "2026-10-01",
		ReservationTime: "19:00",
		NumberOfGuests:  4,
		TableIDs:        []string{"t-1", "t-2"},
		SpecialRequests: "window seat",
	}

	reservation := req.ToModel("alice")

	if reservation.ID == "" {
		t.Error("expected a generated id")
	}

	if reservation.Status != model.StatusPending {
		t.Errorf("new reservations must start pending, got %q", reservation.Status)
	}

	if reservation.ReservationDate.Format(constant.DateFormat) != req.ReservationDate {
		t.Errorf("expected date %s, got %s", req.ReservationDate, reservation.ReservationDate.Format(constant.DateFormat))
	}

	if reservation.CreatedBy != "alice" || reservation.ModifiedBy != "alice" {
		t.Error("expected actor to be recorded in metadata")
	}

	if len(reservation.TableIDs) != 2 {
		t.Errorf("expected table ids to be carried over, got %v", reservation.TableIDs)
	}
}

func TestUpdateReservationRequest_ToFields(t *testing.T) {
	req := dto.UpdateReservationRequest{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+39055123456",
		ReservationDate: "2026-10-01",
		ReservationTime: "20:00",
		NumberOfGuests:  2,
		Status:          model.StatusConfirmed,
		TableIDs:        []string{"t-1"},
		SpecialRequests: "",
	}

	fields := req.ToFields("bob")

	if fields[model.FieldStatus] != model.StatusConfirmed {
		t.Errorf("expected status field, got %v", fields[model.FieldStatus])
	}

	// A full overwrite writes the empty string too.
	if got, ok := fields[model.FieldSpecialRequests]; !ok || got != "" {
		t.Errorf("expected special_requests to be overwritten with empty string, got %v", got)
	}

	if fields[constant.FieldModifiedBy] != "bob" {
		t.Errorf("expected modified_by to be set, got %v", fields[constant.FieldModifiedBy])
	}

	date, ok := fields[model.FieldReservationDate].(time.Time)
	if !ok || date.Format(constant.DateFormat) != req.ReservationDate {
		t.Errorf("expected parsed date, got %v", fields[model.FieldReservationDate])
	}
}

func TestToLinks(t *testing.T) {
	links := dto.ToLinks("res-1", []string{"t-1", "t-2", "t-3"}, "alice")

	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}

	seen := map[string]bool{}

	for i, link := range links {
		if link.ID == "" {
			t.Error("expected each link to get its own id")
		}

		if seen[link.ID] {
			t.Error("link ids must be unique")
		}

		seen[link.ID] = true

		if link.ReservationID != "res-1" {
			t.Errorf("expected reservation id on link %d, got %q", i, link.ReservationID)
		}
	}
}

func TestReservationResponse_FromModel(t *testing.T) {
	reservation := model.Reservation{
		ID:              "res-1",
		CustomerName:    "Ada Lovelace",
		ReservationDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ReservationTime: "19:00",
		NumberOfGuests:  4,
		Status:          model.StatusConfirmed,
		TableIDs:        []string{"t-1"},
	}

	res := dto.ReservationResponse{}
	res.FromModel(reservation)

	if res.ReservationDate != "2026-10-01" {
		t.Errorf("expected date-only formatting, got %q", res.ReservationDate)
	}

	if res.ReservationTime != "19:00" {
		t.Errorf("expected time to pass through, got %q", res.ReservationTime)
	}

	if len(res.TableIDs) != 1 {
		t.Errorf("expected table ids to be carried over, got %v", res.TableIDs)
	}
}
