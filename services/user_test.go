package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4uspend/b4uspend-api/models"
)

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewUserService(db)

	name := "Renamed"
	age := 29
	updated, err := svc.UpdateProfile(user.ID, ProfileUpdate{Name: &name, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 29, *updated.Age)
	assert.Nil(t, updated.City)
}

func TestSetFixedExpensesReplacesAll(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewUserService(db)

	_, err := svc.SetFixedExpenses(user.ID, []FixedExpenseInput{
		{Category: models.FixedRent, Amount: 15000},
		{Category: models.FixedEMI, Amount: 8000},
	})
	require.NoError(t, err)

	updated, err := svc.SetFixedExpenses(user.ID, []FixedExpenseInput{
		{Category: models.FixedBills, Amount: 2500},
	})
	require.NoError(t, err)
	require.Len(t, updated.FixedExpenses, 1)
	assert.Equal(t, models.FixedBills, updated.FixedExpenses[0].Category)
}

func TestCompleteOnboardingRequiresIncome(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewUserService(db)

	_, err := svc.CompleteOnboarding(user.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.SetIncome(user.ID, 55000, 0)
	require.NoError(t, err)

	updated, err := svc.CompleteOnboarding(user.ID)
	require.NoError(t, err)
	assert.True(t, updated.OnboardingComplete)
}

func TestTotalIncome(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewUserService(db)

	updated, err := svc.SetIncome(user.ID, 50000, 7000)
	require.NoError(t, err)
	assert.Equal(t, 57000.0, updated.TotalIncome())
}
