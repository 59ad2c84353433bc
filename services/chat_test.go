package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

func TestChatSendStoresBothMessages(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChatService(db)

	userMsg, botMsg, err := svc.Send(user.ID, "hello there")
	require.NoError(t, err)
	assert.Equal(t, models.ChatRoleUser, userMsg.Role)
	assert.Equal(t, models.ChatRoleBot, botMsg.Role)
	assert.Contains(t, botMsg.Content, "financial advisor")

	messages, err := svc.History(user.ID, 50)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.ChatRoleUser, messages[0].Role)
	assert.Equal(t, models.ChatRoleBot, messages[1].Role)
}

func TestChatGreetingUsesFirstName(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	require.NoError(t, db.Model(user).Update("name", "Asha Verma").Error)
	svc := NewChatService(db)

	_, botMsg, err := svc.Send(user.ID, "Hi!")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "Hi Asha!")
}

func TestChatSpendingIntent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChatService(db)
	expenses := NewExpenseService(db)

	_, botMsg, err := svc.Send(user.ID, "how much did I spend?")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "haven't recorded any expenses")

	_, err = expenses.Create(user.ID, 1200, models.CategoryFoodDining, nil, utils.Today())
	require.NoError(t, err)
	_, err = expenses.Create(user.ID, 300, models.CategoryTransport, nil, utils.Today())
	require.NoError(t, err)

	_, botMsg, err = svc.Send(user.ID, "what is my spending like")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "₹1,500.00")
	assert.Contains(t, botMsg.Content, "Food Dining")
}

func TestChatIntentOrderFirstMatchWins(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChatService(db)

	// "spend" outranks "budget" in the intent table.
	_, botMsg, err := svc.Send(user.ID, "did I spend my budget?")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "expenses")

	_, botMsg, err = svc.Send(user.ID, "show my budget")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "budget for this month")
}

func TestChatIncomeIntent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChatService(db)

	_, botMsg, err := svc.Send(user.ID, "what is my salary breakdown")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "don't have your income details")

	salary := 60000.0
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"monthly_salary": salary,
		"other_income":   5000.0,
	}).Error)

	_, botMsg, err = svc.Send(user.ID, "what do I earn?")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "₹65,000.00")
	assert.Contains(t, botMsg.Content, "monthly salary of ₹60,000.00")
}

func TestChatFallback(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChatService(db)

	_, botMsg, err := svc.Send(user.ID, "tell me about the weather")
	require.NoError(t, err)
	assert.Contains(t, botMsg.Content, "50-30-20")
}

func TestChatHistoryLimitAndClear(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewChatService(db)

	for i := 0; i < 4; i++ {
		_, _, err := svc.Send(user.ID, "hello")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	messages, err := svc.History(user.ID, 3)
	require.NoError(t, err)
	assert.Len(t, messages, 3)

	require.NoError(t, svc.Clear(user.ID))
	messages, err = svc.History(user.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
