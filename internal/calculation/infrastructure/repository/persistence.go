// Package repository 计算记录的 gorm 持久化实现
package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wyfcoding/blackscholes/internal/calculation/domain"
	"github.com/wyfcoding/blackscholes/pkg/clock"
	"github.com/wyfcoding/blackscholes/pkg/logger"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
	"gorm.io/gorm"
)

// CalculationModel 计算记录数据库模型
// 对应数据库中的 calculations 表，价格列可为空：SQLite 会把 NaN 存成 NULL
type CalculationModel struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	S           float64   `gorm:"column:S;not null"`
	K           float64   `gorm:"column:K;not null"`
	T           float64   `gorm:"column:T;not null"`
	R           float64   `gorm:"column:r;not null"`
	Sigma       float64   `gorm:"column:sigma;not null"`
	Q           float64   `gorm:"column:q;not null"`
	CallPrice   *float64  `gorm:"column:call_price"`
	PutPrice    *float64  `gorm:"column:put_price"`
	DateCreated time.Time `gorm:"column:date_created;not null;index"`
}

// TableName 指定表名
func (CalculationModel) TableName() string {
	return "calculations"
}

// ToDomain 将数据库模型转换为领域实体
func (m *CalculationModel) ToDomain() *domain.Calculation {
	return &domain.Calculation{
		ID:          m.ID,
		S:           domain.Float(m.S),
		K:           domain.Float(m.K),
		T:           domain.Float(m.T),
		R:           domain.Float(m.R),
		Sigma:       domain.Float(m.Sigma),
		Q:           domain.Float(m.Q),
		CallPrice:   fromNullable(m.CallPrice),
		PutPrice:    fromNullable(m.PutPrice),
		DateCreated: m.DateCreated.UTC(),
	}
}

func toModel(c *domain.Calculation) *CalculationModel {
	return &CalculationModel{
		ID:          c.ID,
		S:           c.S.Float64(),
		K:           c.K.Float64(),
		T:           c.T.Float64(),
		R:           c.R.Float64(),
		Sigma:       c.Sigma.Float64(),
		Q:           c.Q.Float64(),
		CallPrice:   toNullable(c.CallPrice),
		PutPrice:    toNullable(c.PutPrice),
		DateCreated: c.DateCreated.UTC(),
	}
}

// NaN <-> NULL，±Inf 原样存储
func toNullable(f domain.Float) *float64 {
	v := f.Float64()
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func fromNullable(v *float64) domain.Float {
	if v == nil {
		return domain.Float(math.NaN())
	}
	return domain.Float(*v)
}

// AutoMigrate 创建或更新 calculations 表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&CalculationModel{})
}

// CalculationRepositoryImpl 计算记录仓储实现
type CalculationRepositoryImpl struct {
	db      *gorm.DB
	clock   clock.Clock
	metrics *metrics.Metrics
}

// NewCalculationRepository 创建计算记录仓储实例，m 可为 nil
func NewCalculationRepository(db *gorm.DB, clk clock.Clock, m *metrics.Metrics) domain.CalculationRepository {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &CalculationRepositoryImpl{db: db, clock: clk, metrics: m}
}

// Save 插入一条记录，回填 ID 与创建时间
func (r *CalculationRepositoryImpl) Save(ctx context.Context, calc *domain.Calculation) error {
	defer r.observe("save", time.Now())

	if calc.DateCreated.IsZero() {
		calc.DateCreated = r.clock.Now()
	}
	model := toModel(calc)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		logger.Error(ctx, "Failed to insert calculation", "error", err)
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	calc.ID = model.ID
	calc.DateCreated = model.DateCreated
	return nil
}

// List 列出全部记录，最新的在前
func (r *CalculationRepositoryImpl) List(ctx context.Context) ([]*domain.Calculation, error) {
	defer r.observe("list", time.Now())

	var models []CalculationModel
	if err := r.db.WithContext(ctx).Order("date_created DESC").Order("id DESC").Find(&models).Error; err != nil {
		logger.Error(ctx, "Failed to query calculations", "error", err)
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}

	result := make([]*domain.Calculation, len(models))
	for i := range models {
		result[i] = models[i].ToDomain()
	}
	return result, nil
}

func (r *CalculationRepositoryImpl) observe(op string, start time.Time) {
	if r.metrics != nil {
		r.metrics.RecordDBQuery(op, time.Since(start))
	}
}
