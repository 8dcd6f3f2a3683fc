package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/university/internal/app/models"
	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/dberrors"
	"github.com/yigit/university/internal/pkg/logger"
)

// DegreeRepository handles degree database operations
type DegreeRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewDegreeRepository creates a new DegreeRepository
func NewDegreeRepository(q db.Querier) *DegreeRepository {
	return &DegreeRepository{db: q, sb: psql}
}

// Create inserts a degree and sets its ID
func (r *DegreeRepository) Create(ctx context.Context, degree *models.Degree) error {
	sql, args, err := r.sb.Insert("degrees").
		Columns("name").
		Values(degree.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create degree query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&degree.ID); err != nil {
		logger.Error().Err(err).Str("degree", degree.Name).Msg("Error executing create degree query")
		return dberrors.Classify(err, "error creating degree")
	}

	return nil
}
