package services

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

type ChallengeService struct {
	db *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

// ChallengeProgress is a snapshot of an enrollment's progress, computed from
// expense and contribution rows on every read.
type ChallengeProgress struct {
	ProgressPercent float64 `json:"progress_percent"`
	CurrentValue    float64 `json:"current_value"`
	TargetValue     float64 `json:"target_value"`
	IsCompleted     bool    `json:"is_completed"`
}

// UserChallengeView is an enrollment with its progress joined in.
type UserChallengeView struct {
	models.UserChallenge
	ChallengeProgress
}

// BadgeView is an earned badge with its source challenge title.
type BadgeView struct {
	BadgeType      models.BadgeType `json:"badge_type"`
	EarnedAt       time.Time        `json:"earned_at"`
	ChallengeTitle string           `json:"challenge_title"`
}

// ProgressOverview aggregates a user's challenge standing.
type ProgressOverview struct {
	ActiveChallenges []UserChallengeView `json:"active_challenges"`
	CompletedCount   int64               `json:"completed_count"`
	Badges           []BadgeView         `json:"badges"`
}

// LeaderboardEntry is a pseudonymized ranking row.
type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	ProgressPercent float64 `json:"progress_percent"`
	IsCurrentUser   bool    `json:"is_current_user"`
	AnonymousName   string  `json:"anonymous_name"`
}

// Leaderboard ranks enrollments of one challenge.
type Leaderboard struct {
	ChallengeID       uint               `json:"challenge_id"`
	ChallengeTitle    string             `json:"challenge_title"`
	Entries           []LeaderboardEntry `json:"entries"`
	TotalParticipants int                `json:"total_participants"`
}

// ListAvailable returns the active challenge catalog.
func (s *ChallengeService) ListAvailable() ([]models.Challenge, int64, error) {
	var items []models.Challenge
	query := s.db.Model(&models.Challenge{}).Where("is_active = ?", true)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Join enrolls the user. Fails with Conflict while an ACTIVE enrollment for
// the same challenge exists.
func (s *ChallengeService) Join(userID, challengeID uint) (*models.UserChallenge, error) {
	var challenge models.Challenge
	if err := s.db.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var active int64
	err := s.db.Model(&models.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND status = ?", userID, challengeID, models.StatusActive).
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrConflict
	}

	today := utils.Today()
	uc := models.UserChallenge{
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.StatusActive,
		StartDate:   today,
		EndDate:     today.AddDate(0, 0, challenge.DurationDays),
	}
	if err := s.db.Create(&uc).Error; err != nil {
		return nil, err
	}
	uc.Challenge = challenge
	return &uc, nil
}

// ListMine returns the user's enrollments, optionally filtered by status.
func (s *ChallengeService) ListMine(userID uint, statusFilter models.ChallengeStatus) ([]models.UserChallenge, int64, error) {
	query := s.db.Model(&models.UserChallenge{}).Where("user_id = ?", userID)
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.UserChallenge
	err := query.Preload("Challenge").Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetMine fetches one enrollment scoped to the user.
func (s *ChallengeService) GetMine(userID, userChallengeID uint) (*models.UserChallenge, error) {
	var uc models.UserChallenge
	err := s.db.Preload("Challenge").
		Where("id = ? AND user_id = ?", userChallengeID, userID).
		First(&uc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &uc, nil
}

// Progress computes the enrollment's progress over the window
// [start_date, min(today, end_date)], branching on challenge type.
func (s *ChallengeService) Progress(uc *models.UserChallenge) (*ChallengeProgress, error) {
	challenge := uc.Challenge
	start := uc.StartDate
	end := uc.EndDate
	today := utils.Today()
	effectiveEnd := end
	if today.Before(end) {
		effectiveEnd = today
	}

	var (
		progressPercent float64
		currentValue    float64
		targetValue     float64
		isCompleted     bool
	)

	switch challenge.ChallengeType {
	case models.ChallengeSavings:
		var saved float64
		err := s.db.Model(&models.GoalContribution{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("user_id = ? AND date >= ? AND date <= ?", uc.UserID, start, effectiveEnd).
			Scan(&saved).Error
		if err != nil {
			return nil, err
		}
		currentValue = saved
		if challenge.TargetAmount != nil {
			targetValue = *challenge.TargetAmount
		}
		if targetValue > 0 {
			progressPercent = currentValue / targetValue * 100
			if progressPercent > 100 {
				progressPercent = 100
			}
		}
		isCompleted = currentValue >= targetValue

	case models.ChallengeSpendingLimit:
		query := s.db.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("user_id = ? AND date >= ? AND date <= ?", uc.UserID, start, effectiveEnd)
		if challenge.TargetCategory != nil {
			query = query.Where("category = ?", *challenge.TargetCategory)
		}
		var spent float64
		if err := query.Scan(&spent).Error; err != nil {
			return nil, err
		}
		currentValue = spent
		if challenge.TargetAmount != nil {
			targetValue = *challenge.TargetAmount
		}
		if targetValue > 0 {
			progressPercent = 100 - spent/targetValue*100
			if progressPercent < 0 {
				progressPercent = 0
			}
		}
		isCompleted = !today.Before(end) && spent <= targetValue

	case models.ChallengeNoSpend:
		query := s.db.Model(&models.Expense{}).
			Where("user_id = ? AND date >= ? AND date <= ?", uc.UserID, start, effectiveEnd)
		if challenge.TargetCategory != nil {
			query = query.Where("category = ?", *challenge.TargetCategory)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return nil, err
		}
		currentValue = float64(count)
		targetValue = 0
		if count == 0 {
			progressPercent = 100
		}
		isCompleted = !today.Before(end) && count == 0

	case models.ChallengeStreak:
		var dates []time.Time
		err := s.db.Model(&models.Expense{}).
			Distinct("date").
			Where("user_id = ? AND date >= ? AND date <= ?", uc.UserID, start, effectiveEnd).
			Order("date ASC").
			Pluck("date", &dates).Error
		if err != nil {
			return nil, err
		}
		consecutive := countConsecutiveDays(dates, start)
		currentValue = float64(consecutive)
		targetValue = float64(challenge.DurationDays)
		if targetValue > 0 {
			progressPercent = currentValue / targetValue * 100
			if progressPercent > 100 {
				progressPercent = 100
			}
		}
		isCompleted = consecutive >= challenge.DurationDays
	}

	return &ChallengeProgress{
		ProgressPercent: utils.Round1(progressPercent),
		CurrentValue:    utils.Round2(currentValue),
		TargetValue:     utils.Round2(targetValue),
		IsCompleted:     isCompleted,
	}, nil
}

// countConsecutiveDays counts the run of consecutive calendar dates starting
// exactly at startDate. The run breaks at the first gap.
func countConsecutiveDays(dates []time.Time, startDate time.Time) int {
	consecutive := 0
	expected := startDate
	for _, d := range dates {
		local := d.In(expected.Location())
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, expected.Location())
		if day.Equal(expected) {
			consecutive++
			expected = expected.AddDate(0, 0, 1)
		} else if day.After(expected) {
			break
		}
	}
	return consecutive
}

// CheckAndComplete transitions an ACTIVE enrollment to COMPLETED (awarding
// its badge) or FAILED based on progress and the window end. Evaluated on
// every read path; no background scheduler.
func (s *ChallengeService) CheckAndComplete(uc *models.UserChallenge) error {
	if uc.Status != models.StatusActive {
		return nil
	}
	progress, err := s.Progress(uc)
	if err != nil {
		return err
	}
	today := utils.Today()

	if progress.IsCompleted {
		now := time.Now().UTC()
		uc.Status = models.StatusCompleted
		uc.CompletedAt = &now
		if err := s.db.Model(uc).Updates(map[string]interface{}{
			"status":       models.StatusCompleted,
			"completed_at": now,
		}).Error; err != nil {
			return err
		}
		return s.awardBadge(uc)
	}
	if today.After(uc.EndDate) {
		uc.Status = models.StatusFailed
		return s.db.Model(uc).Update("status", models.StatusFailed).Error
	}
	return nil
}

// awardBadge creates a UserBadge unless one already exists for the badge
// type. First completion wins; later ones are silently absorbed.
func (s *ChallengeService) awardBadge(uc *models.UserChallenge) error {
	badgeType := uc.Challenge.BadgeType
	var count int64
	err := s.db.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_type = ?", uc.UserID, badgeType).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	badge := models.UserBadge{
		UserID:      uc.UserID,
		BadgeType:   badgeType,
		ChallengeID: uc.ChallengeID,
		EarnedAt:    time.Now().UTC(),
	}
	return s.db.Create(&badge).Error
}

// GetLeaderboard ranks ACTIVE and COMPLETED enrollments by progress percent.
// Entries are pseudonymized with a stable hash of the user id.
func (s *ChallengeService) GetLeaderboard(challengeID, currentUserID uint, limit int) (*Leaderboard, error) {
	var challenge models.Challenge
	if err := s.db.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var enrollments []models.UserChallenge
	err := s.db.Preload("Challenge").
		Where("challenge_id = ? AND status IN ?", challengeID,
			[]models.ChallengeStatus{models.StatusActive, models.StatusCompleted}).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	type ranked struct {
		userID  uint
		percent float64
	}
	entries := make([]ranked, 0, len(enrollments))
	for i := range enrollments {
		progress, err := s.Progress(&enrollments[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, ranked{userID: enrollments[i].UserID, percent: progress.ProgressPercent})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].percent > entries[j].percent
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	board := Leaderboard{
		ChallengeID:       challengeID,
		ChallengeTitle:    challenge.Title,
		Entries:           make([]LeaderboardEntry, 0, len(entries)),
		TotalParticipants: len(enrollments),
	}
	for i, e := range entries {
		board.Entries = append(board.Entries, LeaderboardEntry{
			Rank:            i + 1,
			ProgressPercent: e.percent,
			IsCurrentUser:   e.userID == currentUserID,
			AnonymousName:   anonymousName(e.userID),
		})
	}
	return &board, nil
}

// anonymousName derives a stable pseudonym from a user id.
func anonymousName(userID uint) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d", userID)
	return fmt.Sprintf("User #%04d", h.Sum32()%10000)
}

// UserProgress re-evaluates all active enrollments, then aggregates the
// user's active challenges, completed count and earned badges.
func (s *ChallengeService) UserProgress(userID uint) (*ProgressOverview, error) {
	active, _, err := s.ListMine(userID, models.StatusActive)
	if err != nil {
		return nil, err
	}
	for i := range active {
		if err := s.CheckAndComplete(&active[i]); err != nil {
			return nil, err
		}
	}

	active, _, err = s.ListMine(userID, models.StatusActive)
	if err != nil {
		return nil, err
	}

	var completedCount int64
	err = s.db.Model(&models.UserChallenge{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Count(&completedCount).Error
	if err != nil {
		return nil, err
	}

	var badges []models.UserBadge
	if err := s.db.Preload("Challenge").Where("user_id = ?", userID).Find(&badges).Error; err != nil {
		return nil, err
	}

	overview := ProgressOverview{
		ActiveChallenges: make([]UserChallengeView, 0, len(active)),
		CompletedCount:   completedCount,
		Badges:           make([]BadgeView, 0, len(badges)),
	}
	for i := range active {
		progress, err := s.Progress(&active[i])
		if err != nil {
			return nil, err
		}
		overview.ActiveChallenges = append(overview.ActiveChallenges, UserChallengeView{
			UserChallenge:     active[i],
			ChallengeProgress: *progress,
		})
	}
	for _, b := range badges {
		overview.Badges = append(overview.Badges, BadgeView{
			BadgeType:      b.BadgeType,
			EarnedAt:       b.EarnedAt,
			ChallengeTitle: b.Challenge.Title,
		})
	}
	return &overview, nil
}

// Abandon is only legal from ACTIVE.
func (s *ChallengeService) Abandon(userID, userChallengeID uint) error {
	uc, err := s.GetMine(userID, userChallengeID)
	if err != nil {
		return err
	}
	if uc.Status != models.StatusActive {
		return ErrInvalidState
	}
	return s.db.Model(uc).Update("status", models.StatusAbandoned).Error
}
