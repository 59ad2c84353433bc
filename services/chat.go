package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// intent pairs trigger keywords with a response builder. Matched in order,
// first match wins.
type intent struct {
	keywords []string
	respond  func(s *ChatService, userID uint) string
}

var intents = []intent{
	{[]string{"hi", "hello", "hey", "howdy"}, (*ChatService).greeting},
	{[]string{"spend", "spent", "expense", "expenses", "spending"}, (*ChatService).spendingResponse},
	{[]string{"budget"}, (*ChatService).budgetResponse},
	{[]string{"goal", "saving", "save", "target"}, (*ChatService).goalResponse},
	{[]string{"challenge"}, (*ChatService).challengeResponse},
	{[]string{"income", "salary", "earn", "earning"}, (*ChatService).incomeResponse},
	{[]string{"invest", "investment", "stock", "mutual fund", "sip"}, func(*ChatService, uint) string { return investmentAdvice }},
}

// History returns messages oldest first, capped at limit.
func (s *ChatService) History(userID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var messages []models.ChatMessage
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Limit(limit).
		Find(&messages).Error
	return messages, err
}

// Send stores the user message, classifies it against the intent table and
// stores the generated reply. Both messages are returned together.
func (s *ChatService) Send(userID uint, content string) (*models.ChatMessage, *models.ChatMessage, error) {
	userMsg := models.ChatMessage{UserID: userID, Role: models.ChatRoleUser, Content: content}
	if err := s.db.Create(&userMsg).Error; err != nil {
		return nil, nil, err
	}
	botMsg := models.ChatMessage{UserID: userID, Role: models.ChatRoleBot, Content: s.generateResponse(userID, content)}
	if err := s.db.Create(&botMsg).Error; err != nil {
		return nil, nil, err
	}
	return &userMsg, &botMsg, nil
}

// Clear wipes the user's entire chat history.
func (s *ChatService) Clear(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.ChatMessage{}).Error
}

func (s *ChatService) generateResponse(userID uint, question string) string {
	q := strings.ToLower(question)
	for _, in := range intents {
		for _, kw := range in.keywords {
			if strings.Contains(q, kw) {
				return in.respond(s, userID)
			}
		}
	}
	return fallbackResponse
}

func (s *ChatService) greeting(userID uint) string {
	name := "there"
	var user models.User
	if err := s.db.First(&user, userID).Error; err == nil && user.Name != "" {
		name = strings.Fields(user.Name)[0]
	}
	return fmt.Sprintf("Hi %s! I'm your B4U financial advisor. "+
		"You can ask me about your spending, budget, goals, challenges, or income. "+
		"What would you like to know?", name)
}

func (s *ChatService) spendingResponse(userID uint) string {
	now := time.Now()
	start, end := utils.MonthRange(int(now.Month()), now.Year())

	var total float64
	s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&total)

	monthName := now.Format("January")
	if total == 0 {
		return fmt.Sprintf("You haven't recorded any expenses in %s yet. Start tracking to get insights!", monthName)
	}

	var topRow struct {
		Category models.ExpenseCategory
		CatTotal float64
	}
	hasTop := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS cat_total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("category").
		Order("SUM(amount) DESC").
		Limit(1).
		Scan(&topRow).RowsAffected > 0

	msg := fmt.Sprintf("You've spent %s so far in %s.", utils.FormatINR2(total), monthName)
	if hasTop {
		msg += fmt.Sprintf(" Your top category is %s (%s).", titleCase(string(topRow.Category)), utils.FormatINR2(topRow.CatTotal))
	}
	return msg + " Keep tracking to stay on top of your finances!"
}

func (s *ChatService) budgetResponse(userID uint) string {
	now := time.Now()
	var budget models.Budget
	err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, int(now.Month()), now.Year()).
		First(&budget).Error
	if err != nil {
		return "You haven't set a budget for this month yet. Head to the Budget Planner to set one up!"
	}

	var allocated float64
	s.db.Model(&models.BudgetCategory{}).
		Select("COALESCE(SUM(allocated_amount), 0)").
		Where("budget_id = ?", budget.ID).
		Scan(&allocated)

	start, end := utils.MonthRange(budget.Month, budget.Year)
	var spent float64
	s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&spent)

	remaining := allocated - spent
	monthName := now.Format("January")
	if remaining >= 0 {
		return fmt.Sprintf("Great news! In %s your budget is %s and you've spent %s, leaving %s remaining. You're on track!",
			monthName, utils.FormatINR2(allocated), utils.FormatINR2(spent), utils.FormatINR2(remaining))
	}
	return fmt.Sprintf("Heads up! In %s you've spent %s against a budget of %s. You're %s over budget. "+
		"Consider cutting back on discretionary spending.",
		monthName, utils.FormatINR2(spent), utils.FormatINR2(allocated), utils.FormatINR2(-remaining))
}

func (s *ChatService) goalResponse(userID uint) string {
	var goals []models.Goal
	s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").Find(&goals)
	if len(goals) == 0 {
		return "You don't have any active savings goals. " +
			"Set one up in the Goals section to start working toward something meaningful!"
	}

	goal := goals[0]
	remaining := goal.TargetAmount - goal.SavedAmount
	if remaining < 0 {
		remaining = 0
	}
	pct := 0.0
	if goal.TargetAmount > 0 {
		pct = goal.SavedAmount / goal.TargetAmount * 100
		if pct > 100 {
			pct = 100
		}
	}
	msg := fmt.Sprintf("Your top goal is %q: you've saved %s of %s (%.1f%% complete), with %s left to go.",
		goal.Name, utils.FormatINR2(goal.SavedAmount), utils.FormatINR2(goal.TargetAmount), pct, utils.FormatINR2(remaining))
	if len(goals) > 1 {
		msg += fmt.Sprintf(" You have %d active goals in total.", len(goals))
	}
	return msg
}

func (s *ChatService) challengeResponse(userID uint) string {
	var active []models.UserChallenge
	s.db.Preload("Challenge").
		Where("user_id = ? AND status = ?", userID, models.StatusActive).
		Find(&active)
	if len(active) == 0 {
		return "You're not in any challenges right now. " +
			"Check out the Challenges section to join one and earn badges!"
	}

	uc := active[0]
	daysLeft := int(uc.EndDate.Sub(utils.Today()).Hours() / 24)
	if daysLeft < 0 {
		daysLeft = 0
	}
	msg := fmt.Sprintf("You're currently in the %q challenge with %d day(s) remaining.", uc.Challenge.Title, daysLeft)
	if len(active) > 1 {
		msg += fmt.Sprintf(" You have %d active challenges in total.", len(active))
	}
	return msg + " Keep it up!"
}

func (s *ChatService) incomeResponse(userID uint) string {
	var user models.User
	err := s.db.First(&user, userID).Error
	if err != nil || (user.MonthlySalary == nil && user.OtherIncome == 0) {
		return "I don't have your income details on file. Update your profile to get income-based insights."
	}

	salary := 0.0
	if user.MonthlySalary != nil {
		salary = *user.MonthlySalary
	}
	other := user.OtherIncome
	if salary == 0 && other == 0 {
		return "I don't have your income details on file. Update your profile to get income-based insights."
	}

	var parts []string
	if salary > 0 {
		parts = append(parts, fmt.Sprintf("monthly salary of %s", utils.FormatINR2(salary)))
	}
	if other > 0 {
		parts = append(parts, fmt.Sprintf("other income of %s", utils.FormatINR2(other)))
	}
	return fmt.Sprintf("Your total monthly income is %s (%s). "+
		"A good rule of thumb is to save at least 20%% of your income each month.",
		utils.FormatINR2(salary+other), strings.Join(parts, " + "))
}

const investmentAdvice = "Great question! Here are some general investment tips:\n" +
	"• Start with an emergency fund covering 3-6 months of expenses.\n" +
	"• Consider SIPs in diversified mutual funds for long-term wealth building.\n" +
	"• Look at PPF or NPS for tax-saving investments.\n" +
	"• Only invest in equities money you won't need for at least 5 years.\n" +
	"Always consult a certified financial advisor before making investment decisions."

const fallbackResponse = "That's a great question! Here are some financial tips to get you started:\n" +
	"• Track every expense — awareness is the first step to control.\n" +
	"• Follow the 50-30-20 rule: 50% needs, 30% wants, 20% savings.\n" +
	"• Pay yourself first — automate your savings.\n" +
	"• Review your budget monthly and adjust as needed.\n" +
	"You can also ask me about your spending, budget, goals, or challenges!"

// titleCase turns FOOD_DINING into Food Dining.
func titleCase(raw string) string {
	words := strings.Split(strings.ToLower(raw), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
