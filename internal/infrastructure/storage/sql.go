package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"recipe-assistant/internal/core/grocery"
	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/pkg/common"
)

func init() {
	// modernc 註冊的 driver 名稱為 sqlite，使用 ? 佔位符
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// 依 driver 選擇 JSON 欄位型別，其餘 DDL 兩邊共用
var jsonColumnType = map[string]string{
	"postgres": "JSONB",
	"sqlite":   "TEXT",
}

const schemaTemplate = `
CREATE TABLE IF NOT EXISTS recipes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content_json %[1]s NOT NULL,
	nutrition %[1]s,
	tags %[1]s NOT NULL,
	created_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS meal_plans (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS meal_plan_entries (
	id TEXT PRIMARY KEY,
	plan_id TEXT NOT NULL REFERENCES meal_plans(id),
	recipe_id TEXT NOT NULL REFERENCES recipes(id),
	day TEXT NOT NULL DEFAULT '',
	meal_type TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meal_plan_entries_plan ON meal_plan_entries(plan_id, position);
`

// SQLStore 以 sqlx 實作的儲存層，支援 postgres 與 sqlite
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore 連線並建立資料表
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	colType, ok := jsonColumnType[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, storageErr("failed to connect to database", err)
	}
	if driver == "sqlite" {
		// 單一連線，避免 :memory: 資料庫在不同連線間不一致以及寫入鎖衝突
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(fmt.Sprintf(schemaTemplate, colType)); err != nil {
		_ = db.Close()
		return nil, storageErr("failed to create tables", err)
	}

	common.LogInfo("資料庫已連線", zap.String("driver", driver))
	return &SQLStore{db: db}, nil
}

// SaveRecipe 儲存解析後的食譜
func (s *SQLStore) SaveRecipe(ctx context.Context, r *recipe.ParsedRecipe) (*recipe.StoredRecipe, error) {
	content, nutrition, tags, err := encodeRecipe(r)
	if err != nil {
		return nil, err
	}

	stored := &recipe.StoredRecipe{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		ParsedRecipe: r,
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		"INSERT INTO recipes (id, title, content_json, nutrition, tags, created_at) VALUES (?, ?, ?, ?, ?, ?)"),
		stored.ID, r.Title, content, nullString(nutrition), tags, stored.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, storageErr("failed to save recipe", err)
	}
	return stored, nil
}

// GetRecipe 依 ID 取得食譜
func (s *SQLStore) GetRecipe(ctx context.Context, id string) (*recipe.StoredRecipe, error) {
	var row struct {
		ID        string `db:"id"`
		Content   []byte `db:"content_json"`
		CreatedAt int64  `db:"created_at"`
	}
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT id, content_json, created_at FROM recipes WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, storageErr("failed to get recipe", err)
	}

	parsed, err := decodeRecipe(row.Content)
	if err != nil {
		return nil, err
	}
	return &recipe.StoredRecipe{
		ID:           row.ID,
		CreatedAt:    time.UnixMilli(row.CreatedAt).UTC(),
		ParsedRecipe: parsed,
	}, nil
}

// CreateMealPlan 建立餐點計畫
func (s *SQLStore) CreateMealPlan(ctx context.Context, name string) (*MealPlan, error) {
	plan := &MealPlan{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Entries:   []MealPlanEntry{},
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind("INSERT INTO meal_plans (id, name, created_at) VALUES (?, ?, ?)"),
		plan.ID, plan.Name, plan.CreatedAt.UnixMilli())
	if err != nil {
		return nil, storageErr("failed to create meal plan", err)
	}
	return plan, nil
}

// AddMealPlanEntry 在計畫末尾加入一餐
func (s *SQLStore) AddMealPlanEntry(ctx context.Context, planID string, entry NewEntry) (*MealPlanEntry, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := requireRow(ctx, tx, "SELECT 1 FROM meal_plans WHERE id = ?", planID, common.ErrMealPlanNotFound); err != nil {
		return nil, err
	}
	var title string
	if err := tx.GetContext(ctx, &title, tx.Rebind("SELECT title FROM recipes WHERE id = ?"), entry.RecipeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, storageErr("failed to look up recipe", err)
	}

	var position int
	if err := tx.GetContext(ctx, &position, tx.Rebind("SELECT COUNT(*) FROM meal_plan_entries WHERE plan_id = ?"), planID); err != nil {
		return nil, storageErr("failed to count entries", err)
	}

	created := &MealPlanEntry{
		ID:          uuid.NewString(),
		PlanID:      planID,
		RecipeID:    entry.RecipeID,
		RecipeTitle: title,
		Day:         entry.Day,
		MealType:    entry.MealType,
		Position:    position,
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(
		"INSERT INTO meal_plan_entries (id, plan_id, recipe_id, day, meal_type, position) VALUES (?, ?, ?, ?, ?, ?)"),
		created.ID, created.PlanID, created.RecipeID, created.Day, created.MealType, created.Position,
	)
	if err != nil {
		return nil, storageErr("failed to add meal plan entry", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("failed to commit", err)
	}
	return created, nil
}

// GetMealPlan 取得計畫與其中的餐點
func (s *SQLStore) GetMealPlan(ctx context.Context, id string) (*MealPlan, error) {
	var row struct {
		ID        string `db:"id"`
		Name      string `db:"name"`
		CreatedAt int64  `db:"created_at"`
	}
	if err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT id, name, created_at FROM meal_plans WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrMealPlanNotFound
		}
		return nil, storageErr("failed to get meal plan", err)
	}

	entries := []MealPlanEntry{}
	err := s.db.SelectContext(ctx, &entries, s.db.Rebind(`
		SELECT e.id, e.plan_id, e.recipe_id, r.title, e.day, e.meal_type, e.position
		FROM meal_plan_entries e
		JOIN recipes r ON r.id = e.recipe_id
		WHERE e.plan_id = ?
		ORDER BY e.position`), id)
	if err != nil {
		return nil, storageErr("failed to list meal plan entries", err)
	}

	return &MealPlan{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: time.UnixMilli(row.CreatedAt).UTC(),
		Entries:   entries,
	}, nil
}

// ListPlanMeals 讀出計畫中每道菜的食材清單
func (s *SQLStore) ListPlanMeals(ctx context.Context, planID string) ([]grocery.Meal, error) {
	if err := requireRow(ctx, s.db, "SELECT 1 FROM meal_plans WHERE id = ?", planID, common.ErrMealPlanNotFound); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(`
		SELECT e.recipe_id, r.title, r.content_json
		FROM meal_plan_entries e
		JOIN recipes r ON r.id = e.recipe_id
		WHERE e.plan_id = ?
		ORDER BY e.position`), planID)
	if err != nil {
		return nil, storageErr("failed to list plan meals", err)
	}
	defer rows.Close()

	meals := []grocery.Meal{}
	for rows.Next() {
		var (
			recipeID, title string
			content         []byte
		)
		if err := rows.Scan(&recipeID, &title, &content); err != nil {
			return nil, storageErr("failed to scan plan meal", err)
		}
		meals = append(meals, grocery.Meal{
			RecipeID:        recipeID,
			RecipeTitle:     title,
			IngredientLines: decodeIngredientLines(recipeID, content),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("rows error", err)
	}
	return meals, nil
}

// Ping 檢查資料庫連線
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close 關閉資料庫連線
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebinder *sqlx.DB 與 *sqlx.Tx 共有的查詢能力
type rebinder interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func requireRow(ctx context.Context, q rebinder, query, id string, notFound error) error {
	var one int
	if err := sqlx.GetContext(ctx, q, &one, q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		return storageErr("failed to check existence", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return common.ErrStorageError.Wrap(fmt.Errorf("%s: %w", op, err))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
