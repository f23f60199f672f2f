package repository

import (
	"context"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BuildingRepository struct {
	db *pgxpool.Pool
}

func NewBuildingRepository(db *pgxpool.Pool) *BuildingRepository {
	return &BuildingRepository{db: db}
}

const buildingColumns = `id, game_state_id, building_type, level, production_rate,
	produces, efficiency, last_collection, created_at`

func scanBuildings(rows pgx.Rows) ([]*domain.Building, error) {
	defer rows.Close()

	var res []*domain.Building
	for rows.Next() {
		var b domain.Building
		err := rows.Scan(
			&b.ID, &b.GameStateID, &b.BuildingType, &b.Level, &b.ProductionRate,
			&b.Produces, &b.Efficiency, &b.LastCollection, &b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		res = append(res, &b)
	}
	return res, rows.Err()
}

func (r *BuildingRepository) ListByGameState(ctx context.Context, gameStateID int64) ([]*domain.Building, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+buildingColumns+` FROM buildings
		 WHERE game_state_id = $1
		 ORDER BY created_at`, gameStateID)
	if err != nil {
		return nil, err
	}
	return scanBuildings(rows)
}

// ListForUpdate locks the user's buildings inside the caller's transaction so
// collection can advance last_collection without racing another collect.
func (r *BuildingRepository) ListForUpdate(ctx context.Context, tx pgx.Tx, gameStateID int64) ([]*domain.Building, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+buildingColumns+` FROM buildings
		 WHERE game_state_id = $1
		 ORDER BY created_at
		 FOR UPDATE`, gameStateID)
	if err != nil {
		return nil, err
	}
	return scanBuildings(rows)
}

// CountsByType returns how many buildings of each type the user owns.
func (r *BuildingRepository) CountsByType(ctx context.Context, gameStateID int64) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT building_type, COUNT(*) FROM buildings
		 WHERE game_state_id = $1 GROUP BY building_type`, gameStateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var bt string
		var n int
		if err := rows.Scan(&bt, &n); err != nil {
			return nil, err
		}
		counts[bt] = n
	}
	return counts, rows.Err()
}

// CountByTypeWithTx counts buildings of one type, for the exponential cost curve.
func (r *BuildingRepository) CountByTypeWithTx(ctx context.Context, tx pgx.Tx, gameStateID int64, buildingType string) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM buildings WHERE game_state_id = $1 AND building_type = $2`,
		gameStateID, buildingType).Scan(&n)
	return n, err
}

func (r *BuildingRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, b *domain.Building) error {
	return tx.QueryRow(ctx,
		`INSERT INTO buildings (game_state_id, building_type, level, production_rate, produces, efficiency, last_collection)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		b.GameStateID, b.BuildingType, b.Level, b.ProductionRate, b.Produces, b.Efficiency, b.LastCollection,
	).Scan(&b.ID, &b.CreatedAt)
}

// TouchCollectionWithTx advances last_collection after a collect pass.
func (r *BuildingRepository) TouchCollectionWithTx(ctx context.Context, tx pgx.Tx, buildingID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE buildings SET last_collection = NOW() WHERE id = $1`, buildingID)
	return err
}
