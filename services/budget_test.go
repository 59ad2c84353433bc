package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

func TestCreateBudgetConflictPerMonth(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewBudgetService(db)

	_, err := svc.Create(user.ID, 7, 2026, 80000)
	require.NoError(t, err)

	_, err = svc.Create(user.ID, 7, 2026, 90000)
	assert.ErrorIs(t, err, ErrConflict)

	// A different month is fine.
	_, err = svc.Create(user.ID, 8, 2026, 80000)
	assert.NoError(t, err)
}

func TestCurrentBudgetNilWhenMissing(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewBudgetService(db)

	budget, err := svc.Current(user.ID, 1, 2026)
	require.NoError(t, err)
	assert.Nil(t, budget)
}

func TestSetCategoriesReplacesAll(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewBudgetService(db)

	budget, err := svc.Create(user.ID, 6, 2026, 75000)
	require.NoError(t, err)

	_, err = svc.SetCategories(user.ID, budget.ID, []BudgetCategoryInput{
		{Category: models.CategoryFoodDining, AllocatedAmount: 8000},
		{Category: models.CategoryTransport, AllocatedAmount: 3000},
	})
	require.NoError(t, err)

	updated, err := svc.SetCategories(user.ID, budget.ID, []BudgetCategoryInput{
		{Category: models.CategoryShopping, AllocatedAmount: 5000},
	})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, models.CategoryShopping, updated.Categories[0].Category)

	// The earlier rows are gone, not merged.
	var count int64
	require.NoError(t, db.Model(&models.BudgetCategory{}).
		Where("budget_id = ?", budget.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetCategoriesScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	svc := NewBudgetService(db)

	budget, err := svc.Create(user.ID, 5, 2026, 60000)
	require.NoError(t, err)

	_, err = svc.SetCategories(other.ID, budget.ID, []BudgetCategoryInput{
		{Category: models.CategoryBills, AllocatedAmount: 2000},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryAllocationZeroOnMissing(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewBudgetService(db)

	// No budget at all.
	allocation, err := svc.CategoryAllocation(user.ID, models.CategoryFoodDining, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0.0, allocation)

	// Budget exists but the category row does not.
	budget, err := svc.Create(user.ID, 3, 2026, 50000)
	require.NoError(t, err)
	_, err = svc.SetCategories(user.ID, budget.ID, []BudgetCategoryInput{
		{Category: models.CategoryTransport, AllocatedAmount: 4000},
	})
	require.NoError(t, err)

	allocation, err = svc.CategoryAllocation(user.ID, models.CategoryFoodDining, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0.0, allocation)

	allocation, err = svc.CategoryAllocation(user.ID, models.CategoryTransport, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, allocation)
}

func TestEnrichBudgetJoinsSpend(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewBudgetService(db)
	expenses := NewExpenseService(db)

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	budget, err := svc.Create(user.ID, month, year, 70000)
	require.NoError(t, err)
	enriched, err := svc.SetCategories(user.ID, budget.ID, []BudgetCategoryInput{
		{Category: models.CategoryGroceries, AllocatedAmount: 6000},
	})
	require.NoError(t, err)

	_, err = expenses.Create(user.ID, 2200, models.CategoryGroceries, nil, utils.Today())
	require.NoError(t, err)

	view, err := svc.Enrich(enriched)
	require.NoError(t, err)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, 6000.0, view.Categories[0].AllocatedAmount)
	assert.Equal(t, 2200.0, view.Categories[0].SpentAmount)
	assert.Equal(t, 3800.0, view.Categories[0].Remaining)
}
