package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

func TestDashboardAggregates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	seedChecklist(t, db, user.ID)

	users := NewUserService(db)
	_, err := users.SetIncome(user.ID, 60000, 0)
	require.NoError(t, err)
	_, err = users.SetFixedExpenses(user.ID, []FixedExpenseInput{
		{Category: models.FixedRent, Amount: 15000},
	})
	require.NoError(t, err)

	expenses := NewExpenseService(db)
	_, err = expenses.Create(user.ID, 5000, models.CategoryGroceries, nil, utils.Today())
	require.NoError(t, err)

	goals := NewGoalService(db)
	_, err = goals.Create(user.ID, "Laptop", models.IconGadget, 80000, utils.Today().AddDate(0, 8, 0), 20000)
	require.NoError(t, err)

	svc := NewDashboardService(db)
	view, err := svc.Build(user.ID)
	require.NoError(t, err)

	assert.Contains(t, view.Greeting, "Good")
	assert.Equal(t, 60000.0, view.TotalIncome)
	// Fixed outflow plus variable spend.
	assert.Equal(t, 20000.0, view.TotalSpent)
	assert.Equal(t, 40000.0, view.Remaining)
	assert.Equal(t, 40000.0, view.TotalSaved)
	assert.Equal(t, 33, view.SpendPercent)
	assert.Equal(t, 0, view.HealthScore)
	assert.Equal(t, len(models.ChecklistItemTypes()), view.HealthTotal)

	require.NotNil(t, view.ActiveGoal)
	assert.Equal(t, "Laptop", view.ActiveGoal.Name)
	assert.Equal(t, 25, view.ActiveGoal.ProgressPercent)
}

func TestDashboardWithoutIncomeOrGoal(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	seedChecklist(t, db, user.ID)

	svc := NewDashboardService(db)
	view, err := svc.Build(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, view.TotalIncome)
	assert.Equal(t, 0, view.SpendPercent)
	assert.Nil(t, view.ActiveGoal)
	assert.Equal(t, 0.0, view.TotalSaved)
}
