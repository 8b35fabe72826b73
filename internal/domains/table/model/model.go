package model

import "tavolo/shared/model"

const (
	TableName  = "tables"
	EntityName = "table"

	FieldID          = "id"
	FieldTableNumber = "table_number"
	FieldCapacity    = "capacity"
	FieldAvailable   = "available"
)

// Table is a physical restaurant table. Available is the administrative
// on/off switch, independent of any booking state.
type Table struct {
	ID          string `db:"id"`
	TableNumber string `db:"table_number"`
	Capacity    int    `db:"capacity"`
	Available   bool   `db:"available"`
	model.Metadata
}
