package dto

import (
	"tavolo/internal/domains/table/model"
	"tavolo/shared"
	gDto "tavolo/shared/dto"
	gModel "tavolo/shared/model"
	"tavolo/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	TableNumber string `json:"table_number" validate:"required,max=10"`
	Capacity    int    `json:"capacity"     validate:"required,gte=1"`
	Available   *bool  `json:"available"    validate:"omitempty"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Table{
		ID:          uuid.NewString(),
		TableNumber: c.TableNumber,
		Capacity:    c.Capacity,
		Available:   available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	TableNumber string `db:"table_number" json:"table_number" validate:"omitempty,max=10"`
	Capacity    int    `db:"capacity"     json:"capacity"      validate:"omitempty,gte=1"`
	Available   *bool  `db:"available"    json:"available"     validate:"omitempty"`
}

type TableResponse struct {
	ID          string `json:"id"`
	TableNumber string `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Available   bool   `json:"available"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.TableNumber = model.TableNumber
	r.Capacity = model.Capacity
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
