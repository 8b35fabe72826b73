package dto

import (
	"tavolo/internal/domains/reservation/model"
	"tavolo/shared"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	gModel "tavolo/shared/model"
	"tavolo/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CustomerName    string   `json:"customer_name"    validate:"required,max=100"`
	CustomerEmail   string   `json:"customer_email"   validate:"required,email"`
	CustomerPhone   string   `json:"customer_phone"   validate:"required,max=20"`
	ReservationDate string   `json:"reservation_date" validate:"required,dateonly"`
	ReservationTime string   `json:"reservation_time" validate:"required,timeofday"`
	NumberOfGuests  int      `json:"number_of_guests" validate:"required"`
	TableIDs        []string `json:"table_ids"        validate:"omitempty,dive,uuid4"`
	SpecialRequests string   `json:"special_requests" validate:"omitempty,max=500"`
}

func (c *CreateReservationRequest) ToModel(user string) model.Reservation {
	date, _ := timezone.Parse(constant.DateFormat, c.ReservationDate)

	res := model.Reservation{
		ID:              uuid.NewString(),
		CustomerName:    c.CustomerName,
		CustomerEmail:   c.CustomerEmail,
		CustomerPhone:   c.CustomerPhone,
		ReservationDate: date,
		ReservationTime: c.ReservationTime,
		NumberOfGuests:  c.NumberOfGuests,
		Status:          model.StatusPending,
		SpecialRequests: c.SpecialRequests,
		TableIDs:        c.TableIDs,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	return res
}

type UpdateReservationRequest struct {
	CustomerName    string   `json:"customer_name"    validate:"required,max=100"`
	CustomerEmail   string   `json:"customer_email"   validate:"required,email"`
	CustomerPhone   string   `json:"customer_phone"   validate:"required,max=20"`
	ReservationDate string   `json:"reservation_date" validate:"required,dateonly"`
	ReservationTime string   `json:"reservation_time" validate:"required,timeofday"`
	NumberOfGuests  int      `json:"number_of_guests" validate:"required,gte=1"`
	Status          string   `json:"status"           validate:"required,oneof=pending confirmed cancelled completed"`
	TableIDs        []string `json:"table_ids"        validate:"omitempty,dive,uuid4"`
	SpecialRequests string   `json:"special_requests" validate:"omitempty,max=500"`
}

// ToFields builds the full column overwrite for an update. Every scalar
// is written, not just the changed ones.
func (u *UpdateReservationRequest) ToFields(user string) map[string]any {
	date, _ := timezone.Parse(constant.DateFormat, u.ReservationDate)

	return map[string]any{
		model.FieldCustomerName:    u.CustomerName,
		model.FieldCustomerEmail:   u.CustomerEmail,
		model.FieldCustomerPhone:   u.CustomerPhone,
		model.FieldReservationDate: date,
		model.FieldReservationTime: u.ReservationTime,
		model.FieldNumberOfGuests:  u.NumberOfGuests,
		model.FieldStatus:          u.Status,
		model.FieldSpecialRequests: u.SpecialRequests,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   user,
	}
}

// ToLinks builds the replacement link rows for the reservation.
func ToLinks(reservationID string, tableIDs []string, user string) []model.ReservationTable {
	links := make([]model.ReservationTable, len(tableIDs))
	for i, tableID := range tableIDs {
		links[i] = model.ReservationTable{
			ID:            uuid.NewString(),
			ReservationID: reservationID,
			TableID:       tableID,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return links
}

type ReservationResponse struct {
	ID              string   `json:"id"`
	CustomerName    string   `json:"customer_name"`
	CustomerEmail   string   `json:"customer_email"`
	CustomerPhone   string   `json:"customer_phone"`
	ReservationDate string   `json:"reservation_date"`
	ReservationTime string   `json:"reservation_time"`
	NumberOfGuests  int      `json:"number_of_guests"`
	Status          string   `json:"status"`
	SpecialRequests string   `json:"special_requests"`
	TableIDs        []string `json:"table_ids"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.CustomerName = m.CustomerName
	r.CustomerEmail = m.CustomerEmail
	r.CustomerPhone = m.CustomerPhone
	r.ReservationDate = m.ReservationDate.Format(constant.DateFormat)
	r.ReservationTime = m.ReservationTime
	r.NumberOfGuests = m.NumberOfGuests
	r.Status = m.Status
	r.SpecialRequests = m.SpecialRequests
	r.TableIDs = m.TableIDs
	r.Metadata.FromModel(m.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type CustomerStatisticsResponse struct {
	CustomerEmail         string `json:"customer_email"`
	CompletedReservations int    `json:"completed_reservations"`
	IsEligibleForDiscount bool   `json:"is_eligible_for_discount"`
	DiscountPercentage    int    `json:"discount_percentage"`
}

// ReservationEvent is the payload published to the broker on every
// reservation lifecycle change.
type ReservationEvent struct {
	Action        string   `json:"action"`
	ReservationID string   `json:"reservation_id"`
	CustomerEmail string   `json:"customer_email,omitempty"`
	Date          string   `json:"date,omitempty"`
	Time          string   `json:"time,omitempty"`
	TableIDs      []string `json:"table_ids,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}
