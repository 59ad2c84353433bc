package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

func seedCatalog(t *testing.T, db *gorm.DB) []models.Challenge {
	t.Helper()
	catalog := models.SeedChallenges()
	require.NoError(t, db.Create(&catalog).Error)
	return catalog
}

func findChallenge(t *testing.T, catalog []models.Challenge, challengeType models.ChallengeType) models.Challenge {
	t.Helper()
	for _, c := range catalog {
		if c.ChallengeType == challengeType {
			return c
		}
	}
	t.Fatalf("no %s challenge in catalog", challengeType)
	return models.Challenge{}
}

func addExpense(t *testing.T, db *gorm.DB, userID uint, amount float64, category models.ExpenseCategory, daysFromToday int) {
	t.Helper()
	expense := models.Expense{
		UserID:   userID,
		Amount:   amount,
		Category: category,
		Date:     utils.Today().AddDate(0, 0, daysFromToday),
	}
	require.NoError(t, db.Create(&expense).Error)
}

func TestJoinChallengeConflictWhileActive(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)

	streak := findChallenge(t, catalog, models.ChallengeStreak)
	uc, err := svc.Join(user.ID, streak.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, uc.Status)
	assert.Equal(t, uc.StartDate.AddDate(0, 0, streak.DurationDays), uc.EndDate)

	_, err = svc.Join(user.ID, streak.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestJoinAfterAbandonSucceeds(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)

	streak := findChallenge(t, catalog, models.ChallengeStreak)
	uc, err := svc.Join(user.ID, streak.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Abandon(user.ID, uc.ID))

	// Abandon is terminal and only legal from ACTIVE.
	assert.ErrorIs(t, svc.Abandon(user.ID, uc.ID), ErrInvalidState)

	_, err = svc.Join(user.ID, streak.ID)
	assert.NoError(t, err)
}

func TestJoinUnknownChallenge(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChallengeService(db)

	_, err := svc.Join(user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStreakProgressBreaksAtGap(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)

	streak := findChallenge(t, catalog, models.ChallengeStreak)
	uc, err := svc.Join(user.ID, streak.ID)
	require.NoError(t, err)

	// Backdate the window so day offsets land inside it.
	start := utils.Today().AddDate(0, 0, -5)
	require.NoError(t, db.Model(uc).Updates(map[string]interface{}{
		"start_date": start,
		"end_date":   start.AddDate(0, 0, streak.DurationDays),
	}).Error)
	uc.StartDate = start
	uc.EndDate = start.AddDate(0, 0, streak.DurationDays)

	// Expenses on start, start+1 and start+3: the run breaks at start+2.
	addExpense(t, db, user.ID, 100, models.CategoryGroceries, -5)
	addExpense(t, db, user.ID, 80, models.CategoryTransport, -4)
	addExpense(t, db, user.ID, 50, models.CategoryFoodDining, -2)

	progress, err := svc.Progress(uc)
	require.NoError(t, err)
	assert.Equal(t, 2.0, progress.CurrentValue)
	assert.False(t, progress.IsCompleted)
	assert.InDelta(t, utils.Round1(2.0/float64(streak.DurationDays)*100), progress.ProgressPercent, 0.001)
}

func TestSpendingLimitUnderCapCompletesOnlyAfterEnd(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)

	limit := findChallenge(t, catalog, models.ChallengeSpendingLimit)
	uc, err := svc.Join(user.ID, limit.ID)
	require.NoError(t, err)

	addExpense(t, db, user.ID, 3000, models.CategoryFoodDining, 0)
	// Other categories must not count against the cap.
	addExpense(t, db, user.ID, 9000, models.CategoryShopping, 0)

	progress, err := svc.Progress(uc)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, progress.CurrentValue)
	assert.InDelta(t, 40.0, progress.ProgressPercent, 0.001)
	assert.False(t, progress.IsCompleted)

	require.NoError(t, svc.CheckAndComplete(uc))
	assert.Equal(t, models.StatusActive, uc.Status)

	// Close the window in the past: under the cap means COMPLETED.
	start := utils.Today().AddDate(0, 0, -40)
	end := start.AddDate(0, 0, limit.DurationDays)
	require.NoError(t, db.Model(uc).Updates(map[string]interface{}{
		"start_date": start,
		"end_date":   end,
	}).Error)
	uc.StartDate, uc.EndDate = start, end

	require.NoError(t, svc.CheckAndComplete(uc))
	assert.Equal(t, models.StatusCompleted, uc.Status)
	require.NotNil(t, uc.CompletedAt)
}

func TestSpendingLimitOverCapFailsAfterEnd(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)

	limit := findChallenge(t, catalog, models.ChallengeSpendingLimit)
	uc, err := svc.Join(user.ID, limit.ID)
	require.NoError(t, err)

	start := utils.Today().AddDate(0, 0, -40)
	end := start.AddDate(0, 0, limit.DurationDays)
	require.NoError(t, db.Model(uc).Updates(map[string]interface{}{
		"start_date": start,
		"end_date":   end,
	}).Error)
	uc.StartDate, uc.EndDate = start, end

	addExpense(t, db, user.ID, 6000, models.CategoryFoodDining, -35)

	require.NoError(t, svc.CheckAndComplete(uc))
	assert.Equal(t, models.StatusFailed, uc.Status)
	assert.Nil(t, uc.CompletedAt)
}

func TestSavingsChallengeCompletesOnTarget(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	challengeSvc := NewChallengeService(db)
	goalSvc := NewGoalService(db)

	savings := findChallenge(t, catalog, models.ChallengeSavings)
	require.NotNil(t, savings.TargetAmount)

	uc, err := challengeSvc.Join(user.ID, savings.ID)
	require.NoError(t, err)

	goal, err := goalSvc.Create(user.ID, "Sprint", models.IconOtherGoal, *savings.TargetAmount*2, utils.Today().AddDate(0, 2, 0), 0)
	require.NoError(t, err)
	_, err = goalSvc.AddContribution(user.ID, goal.ID, *savings.TargetAmount, utils.Today())
	require.NoError(t, err)

	require.NoError(t, challengeSvc.CheckAndComplete(uc))
	assert.Equal(t, models.StatusCompleted, uc.Status)
}

func TestBadgeAwardIdempotentAcrossChallenges(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	challengeSvc := NewChallengeService(db)
	goalSvc := NewGoalService(db)

	// Both SAVINGS catalog entries share the same badge type.
	var savingsChallenges []models.Challenge
	for _, c := range catalog {
		if c.ChallengeType == models.ChallengeSavings {
			savingsChallenges = append(savingsChallenges, c)
		}
	}
	require.GreaterOrEqual(t, len(savingsChallenges), 2)

	goal, err := goalSvc.Create(user.ID, "Big Save", models.IconHome, 100000, utils.Today().AddDate(1, 0, 0), 0)
	require.NoError(t, err)
	_, err = goalSvc.AddContribution(user.ID, goal.ID, 50000, utils.Today())
	require.NoError(t, err)

	for _, c := range savingsChallenges {
		uc, err := challengeSvc.Join(user.ID, c.ID)
		require.NoError(t, err)
		require.NoError(t, challengeSvc.CheckAndComplete(uc))
		assert.Equal(t, models.StatusCompleted, uc.Status)
	}

	var badges int64
	require.NoError(t, db.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_type = ?", user.ID, models.BadgeSavingsMaster).
		Count(&badges).Error)
	assert.Equal(t, int64(1), badges)
}

func TestNoSpendChallenge(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)

	noSpend := findChallenge(t, catalog, models.ChallengeNoSpend)
	uc, err := svc.Join(user.ID, noSpend.ID)
	require.NoError(t, err)

	progress, err := svc.Progress(uc)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress.ProgressPercent)
	// Window still open, so not completed yet.
	assert.False(t, progress.IsCompleted)

	// A shopping expense inside the window zeroes the progress.
	addExpense(t, db, user.ID, 1500, models.CategoryShopping, 0)
	progress, err = svc.Progress(uc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.ProgressPercent)
	assert.Equal(t, 1.0, progress.CurrentValue)
}

func TestLeaderboardRanksAndPseudonymizes(t *testing.T) {
	db := newTestDB(t)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)
	goalSvc := NewGoalService(db)

	savings := findChallenge(t, catalog, models.ChallengeSavings)

	leader := createTestUser(t, db)
	trailer := createTestUser(t, db)
	for _, u := range []*models.User{leader, trailer} {
		_, err := svc.Join(u.ID, savings.ID)
		require.NoError(t, err)
	}

	goal, err := goalSvc.Create(leader.ID, "Lead", models.IconCar, 50000, utils.Today().AddDate(0, 6, 0), 0)
	require.NoError(t, err)
	_, err = goalSvc.AddContribution(leader.ID, goal.ID, 4000, utils.Today())
	require.NoError(t, err)

	board, err := svc.GetLeaderboard(savings.ID, trailer.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, savings.Title, board.ChallengeTitle)
	assert.Equal(t, 2, board.TotalParticipants)
	require.Len(t, board.Entries, 2)

	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Greater(t, board.Entries[0].ProgressPercent, board.Entries[1].ProgressPercent)
	assert.False(t, board.Entries[0].IsCurrentUser)
	assert.True(t, board.Entries[1].IsCurrentUser)
	assert.Regexp(t, `^User #\d{4}$`, board.Entries[0].AnonymousName)

	// Pseudonyms are stable for the same user across calls.
	again, err := svc.GetLeaderboard(savings.ID, trailer.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, board.Entries[0].AnonymousName, again.Entries[0].AnonymousName)
}

func TestUserProgressOverview(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	catalog := seedCatalog(t, db)
	svc := NewChallengeService(db)

	streak := findChallenge(t, catalog, models.ChallengeStreak)
	noSpend := findChallenge(t, catalog, models.ChallengeNoSpend)
	_, err := svc.Join(user.ID, streak.ID)
	require.NoError(t, err)
	_, err = svc.Join(user.ID, noSpend.ID)
	require.NoError(t, err)

	overview, err := svc.UserProgress(user.ID)
	require.NoError(t, err)
	assert.Len(t, overview.ActiveChallenges, 2)
	assert.Equal(t, int64(0), overview.CompletedCount)
	assert.Empty(t, overview.Badges)
}
