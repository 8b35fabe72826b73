package model

import (
	"time"

	"tavolo/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	LinkTableName  = "reservation_tables"
	LinkEntityName = "reservation_table"

	FieldID              = "id"
	FieldCustomerName    = "customer_name"
	FieldCustomerEmail   = "customer_email"
	FieldCustomerPhone   = "customer_phone"
	FieldReservationDate = "reservation_date"
	FieldReservationTime = "reservation_time"
	FieldNumberOfGuests  = "number_of_guests"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"

	FieldReservationID = "reservation_id"
	FieldTableID       = "table_id"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation is a booking for one or more tables at a given date and
// time of day. TableIDs is hydrated from the link table, not a column.
type Reservation struct {
	ID              string    `db:"id"`
	CustomerName    string    `db:"customer_name"`
	CustomerEmail   string    `db:"customer_email"`
	CustomerPhone   string    `db:"customer_phone"`
	ReservationDate time.Time `db:"reservation_date"`
	ReservationTime string    `db:"reservation_time"`
	NumberOfGuests  int       `db:"number_of_guests"`
	Status          string    `db:"status"`
	SpecialRequests string    `db:"special_requests"`
	TableIDs        []string  `db:"-"`
	model.Metadata
}

// ReservationTable links a reservation to one of its tables.
type ReservationTable struct {
	ID            string `db:"id"`
	ReservationID string `db:"reservation_id"`
	TableID       string `db:"table_id"`
	model.Metadata
}

// BookedSlot is one table occupied at a time of day, used for the
// conflict window check. Cancelled reservations never produce slots.
type BookedSlot struct {
	TableID         string `db:"table_id"`
	ReservationTime string `db:"reservation_time"`
}
