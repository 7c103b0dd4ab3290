package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/TheOneTrueGod/lomithBackend/internal/models"
	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

// GormRecipeRepository is the relational backend. Identifiers are
// auto-incrementing integers rendered as strings on the wire; tags go
// through the shared dictionary. Filtering and pagination are pushed
// into the database so a listing is a single count plus one page
// query.
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a repository on top of an open
// database handle.
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// parseID converts a wire id to a row id. Non-numeric ids cannot
// exist in this backend, so they behave like any other unknown id.
func parseID(id string) (uint, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// escapeLike quotes LIKE metacharacters so the search term matches as
// a literal substring, the same way the memory backend matches it.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *GormRecipeRepository) applyFilters(tx *gorm.DB, params ListParams) *gorm.DB {
	if params.UserID != "" {
		tx = tx.Where("user_id = ?", params.UserID)
	}
	if params.Search != "" {
		like := "%" + escapeLike(strings.ToLower(params.Search)) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR EXISTS ("+
				"SELECT 1 FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id "+
				"WHERE recipe_tags.recipe_id = recipes.id AND LOWER(tags.name) LIKE ? ESCAPE '\\')",
			like, like, like,
		)
	}
	return tx
}

func withAssociations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.id ASC")
		}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("steps.position ASC")
		}).
		Preload("Steps.Ingredients")
}

// toWire converts a loaded model graph plus its ordered tag names to
// the wire representation.
func toWire(m models.Recipe, tags []string) types.Recipe {
	ingredients := make([]types.Ingredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ingredients[i] = types.Ingredient{
			ID:     formatID(ing.ID),
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		}
	}

	steps := make([]types.Step, len(m.Steps))
	for i, st := range m.Steps {
		refs := make([]string, len(st.Ingredients))
		for j, ing := range st.Ingredients {
			refs[j] = formatID(ing.ID)
		}
		steps[i] = types.Step{
			ID:           formatID(st.ID),
			Instructions: st.Instructions,
			Ingredients:  refs,
		}
	}

	if tags == nil {
		tags = []string{}
	}

	return types.Recipe{
		ID:          formatID(m.ID),
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		PrepTime:    m.PrepTime,
		CookTime:    m.CookTime,
		Servings:    m.Servings,
		ImageURL:    m.ImageURL,
		Ingredients: ingredients,
		Steps:       steps,
		Tags:        tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// loadTags returns each recipe's tag names in stored display order.
func (r *GormRecipeRepository) loadTags(ctx context.Context, recipeIDs []uint) (map[uint][]string, error) {
	out := make(map[uint][]string, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		RecipeID uint
		Name     string
	}
	err := r.db.WithContext(ctx).
		Table("recipe_tags").
		Select("recipe_tags.recipe_id, tags.name").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("recipe_tags.recipe_id IN ?", recipeIDs).
		Order("recipe_tags.recipe_id ASC, recipe_tags.position ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], row.Name)
	}
	return out, nil
}

// GetList counts the filtered set, then fetches one page ordered by
// ascending id. Pages past the end come back empty with the total
// untouched.
func (r *GormRecipeRepository) GetList(ctx context.Context, params ListParams) ([]types.Recipe, int, error) {
	var total int64
	countQ := r.applyFilters(r.db.WithContext(ctx).Model(&models.Recipe{}), params)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting recipes: %w", err)
	}

	var rows []models.Recipe
	pageQ := r.applyFilters(r.db.WithContext(ctx).Model(&models.Recipe{}), params).
		Order("recipes.id ASC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize)
	if err := withAssociations(pageQ).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("listing recipes: %w", err)
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	tags, err := r.loadTags(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("loading recipe tags: %w", err)
	}

	out := make([]types.Recipe, len(rows))
	for i, row := range rows {
		out[i] = toWire(row, tags[row.ID])
	}
	return out, int(total), nil
}

// GetByID returns the recipe or (nil, nil) when the id is unknown or
// not numeric.
func (r *GormRecipeRepository) GetByID(ctx context.Context, id string) (*types.Recipe, error) {
	rowID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var row models.Recipe
	err := withAssociations(r.db.WithContext(ctx)).First(&row, "recipes.id = ?", rowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipe %s: %w", id, err)
	}

	tags, err := r.loadTags(ctx, []uint{row.ID})
	if err != nil {
		return nil, fmt.Errorf("loading recipe tags: %w", err)
	}
	recipe := toWire(row, tags[row.ID])
	return &recipe, nil
}

// Create inserts the recipe graph in one transaction. The store
// assigns all row ids; step ingredient references are resolved
// against the caller-supplied ingredient ids of the same payload and
// unknown references are dropped, mirroring the foreign-key filter of
// the relational schema.
func (r *GormRecipeRepository) Create(ctx context.Context, recipe types.Recipe) (*types.Recipe, error) {
	var createdID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.Recipe{
			UserID:      recipe.UserID,
			Title:       recipe.Title,
			Description: recipe.Description,
			PrepTime:    recipe.PrepTime,
			CookTime:    recipe.CookTime,
			Servings:    recipe.Servings,
			ImageURL:    recipe.ImageURL,
			CreatedAt:   recipe.CreatedAt,
			UpdatedAt:   recipe.UpdatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		refs, err := createIngredients(tx, row.ID, recipe.Ingredients)
		if err != nil {
			return err
		}
		if err := createSteps(tx, row.ID, recipe.Steps, refs); err != nil {
			return err
		}
		if err := attachTags(tx, row.ID, recipe.Tags); err != nil {
			return err
		}

		createdID = row.ID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}
	return r.GetByID(ctx, formatID(createdID))
}

// Update applies a partial update in one transaction. Present
// collections are replaced wholesale; step positions are re-derived
// from the payload order.
func (r *GormRecipeRepository) Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.Recipe, error) {
	rowID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var row models.Recipe
	err := r.db.WithContext(ctx).First(&row, "id = ?", rowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipe %s: %w", id, err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{}
		if update.UserID != nil {
			fields["user_id"] = *update.UserID
		}
		if update.Title != nil {
			fields["title"] = *update.Title
		}
		if update.Description != nil {
			fields["description"] = *update.Description
		}
		if update.PrepTime != nil {
			fields["prep_time"] = *update.PrepTime
		}
		if update.CookTime != nil {
			fields["cook_time"] = *update.CookTime
		}
		if update.Servings != nil {
			fields["servings"] = *update.Servings
		}
		if update.ImageURL != nil {
			fields["image_url"] = *update.ImageURL
		}
		if update.UpdatedAt != nil {
			fields["updated_at"] = *update.UpdatedAt
		} else {
			fields["updated_at"] = time.Now().UTC()
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", rowID).Updates(fields).Error; err != nil {
			return err
		}

		// Replacing either collection invalidates the step-ingredient
		// join rows, so clear them once up front.
		if update.Ingredients != nil || update.Steps != nil {
			if err := clearStepIngredients(tx, rowID); err != nil {
				return err
			}
		}

		var refs map[string]models.Ingredient
		if update.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", rowID).Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
			refs, err = createIngredients(tx, rowID, update.Ingredients)
			if err != nil {
				return err
			}
		}

		if update.Steps != nil {
			if err := tx.Where("recipe_id = ?", rowID).Delete(&models.Step{}).Error; err != nil {
				return err
			}
			if refs == nil {
				// Steps replaced without the ingredient list: resolve
				// references against the stored ingredient rows.
				var existing []models.Ingredient
				if err := tx.Where("recipe_id = ?", rowID).Find(&existing).Error; err != nil {
					return err
				}
				refs = make(map[string]models.Ingredient, len(existing))
				for _, ing := range existing {
					refs[formatID(ing.ID)] = ing
				}
			}
			if err := createSteps(tx, rowID, update.Steps, refs); err != nil {
				return err
			}
		}

		if update.Tags != nil {
			if err := tx.Where("recipe_id = ?", rowID).Delete(&models.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := attachTags(tx, rowID, update.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating recipe %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the recipe and its owned rows. Child deletion is
// explicit rather than relying on database-level cascades so the
// behavior holds on SQLite without the foreign-key pragma.
func (r *GormRecipeRepository) Delete(ctx context.Context, id string) (bool, error) {
	rowID, ok := parseID(id)
	if !ok {
		return false, nil
	}

	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearStepIngredients(tx, rowID); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rowID).Delete(&models.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rowID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rowID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, "id = ?", rowID)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("deleting recipe %s: %w", id, err)
	}
	return removed, nil
}

func createIngredients(tx *gorm.DB, recipeID uint, ingredients []types.Ingredient) (map[string]models.Ingredient, error) {
	refs := make(map[string]models.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		row := models.Ingredient{
			RecipeID: recipeID,
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, err
		}
		if ing.ID != "" {
			refs[ing.ID] = row
		}
	}
	return refs, nil
}

func createSteps(tx *gorm.DB, recipeID uint, steps []types.Step, refs map[string]models.Ingredient) error {
	for idx, st := range steps {
		row := models.Step{
			RecipeID:     recipeID,
			Instructions: st.Instructions,
			Position:     idx + 1,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		var used []models.Ingredient
		for _, ref := range st.Ingredients {
			if ing, ok := refs[ref]; ok {
				used = append(used, ing)
			}
		}
		if len(used) > 0 {
			if err := tx.Model(&row).Association("Ingredients").Append(&used); err != nil {
				return err
			}
		}
	}
	return nil
}

// attachTags resolves each name against the shared dictionary and
// writes the join rows with 1-indexed positions in first-occurrence
// order.
func attachTags(tx *gorm.DB, recipeID uint, tags []string) error {
	for idx, name := range dedupeTags(tags) {
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
		link := models.RecipeTag{RecipeID: recipeID, TagID: tag.ID, Position: idx + 1}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearStepIngredients(tx *gorm.DB, recipeID uint) error {
	return tx.Exec(
		"DELETE FROM step_ingredients WHERE step_id IN (SELECT id FROM steps WHERE recipe_id = ?)",
		recipeID,
	).Error
}
