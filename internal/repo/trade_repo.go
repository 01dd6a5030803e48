package repo

import (
	"context"
	"time"

	"github.com/dushixiang/tradejournal/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewTradeRepo(db *gorm.DB) *TradeRepo {
	return &TradeRepo{
		Repository: orz.NewRepository[models.Trade, string](db),
	}
}

type TradeRepo struct {
	orz.Repository[models.Trade, string]
}

// TradeFilter 交易列表过滤条件，nil 字段不参与过滤
type TradeFilter struct {
	Pair   *string
	Status *models.TradeStatus
	Start  *time.Time // opened_at >= Start
	End    *time.Time // opened_at <= End
}

// FindByFilter 按条件查询交易记录（条件之间为 AND）
func (r TradeRepo) FindByFilter(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	trades := make([]models.Trade, 0)
	db := r.GetDB(ctx).Table(r.GetTableName())
	if filter.Pair != nil {
		db = db.Where("pair = ?", *filter.Pair)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Start != nil {
		db = db.Where("opened_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		db = db.Where("opened_at <= ?", *filter.End)
	}
	err := db.Order("opened_at DESC").Find(&trades).Error
	return trades, err
}

// FindClosedOrderByClosedAt 获取所有已平仓交易（按平仓时间升序）
func (r TradeRepo) FindClosedOrderByClosedAt(ctx context.Context) ([]models.Trade, error) {
	trades := make([]models.Trade, 0)
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("status = ?", models.TradeStatusClosed).
		Order("closed_at ASC").
		Order("id ASC").
		Find(&trades).Error
	return trades, err
}
