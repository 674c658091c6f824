package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavingsRouter(t *testing.T) *gin.Engine {
	setupTestEnv(t)
	userID := registerAPITestUser(t, "alice")

	r := gin.New()
	r.Use(setUserIDMiddleware(userID))
	h := NewSavingsHandler()
	r.GET("/savings/goals", h.ListGoals)
	r.POST("/savings/goals", h.CreateGoal)
	r.POST("/savings/deposits", h.CreateDeposit)
	r.GET("/savings/total", h.GetTotal)
	r.GET("/savings/transactions", h.ListTransactions)
	return r
}

func TestSavingsHandler_CreateGoalAndList(t *testing.T) {
	r := newSavingsRouter(t)

	w := doJSON(r, "POST", "/savings/goals", `{"name":"Holiday","target_amount":10000,"target_date":"2026-12-31"}`)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/savings/goals", "")
	resp := parseResponse(t, w)
	list := resp["data"].([]interface{})
	require.Len(t, list, 1)
	goal := list[0].(map[string]interface{})
	assert.Equal(t, "Holiday", goal["name"])
	assert.Equal(t, 10000.0, goal["target_amount"])
	assert.Equal(t, 0.0, goal["current_amount"])
	assert.Contains(t, goal["target_date"], "2026-12-31")
}

func TestSavingsHandler_CreateGoal_Duplicate(t *testing.T) {
	r := newSavingsRouter(t)

	w := doJSON(r, "POST", "/savings/goals", `{"name":"Holiday","target_amount":10000}`)
	require.Equal(t, 200, w.Code)
	w = doJSON(r, "POST", "/savings/goals", `{"name":"Holiday","target_amount":5000}`)
	assert.Equal(t, 400, w.Code)
}

func TestSavingsHandler_CreateGoal_BadDate(t *testing.T) {
	r := newSavingsRouter(t)

	w := doJSON(r, "POST", "/savings/goals", `{"name":"Holiday","target_amount":10000,"target_date":"31/12/2026"}`)
	assert.Equal(t, 400, w.Code)
}

func TestSavingsHandler_DepositsSumIntoGoal(t *testing.T) {
	r := newSavingsRouter(t)

	w := doJSON(r, "POST", "/savings/goals", `{"name":"Holiday","target_amount":10000}`)
	require.Equal(t, 200, w.Code)

	w = doJSON(r, "POST", "/savings/deposits", `{"goal_name":"Holiday","amount":300}`)
	require.Equal(t, 200, w.Code)
	w = doJSON(r, "POST", "/savings/deposits", `{"goal_name":"Holiday","amount":200}`)
	require.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/savings/goals", "")
	resp := parseResponse(t, w)
	goal := resp["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 500.0, goal["current_amount"])

	w = doJSON(r, "GET", "/savings/total", "")
	resp = parseResponse(t, w)
	assert.Equal(t, 500.0, resp["data"].(map[string]interface{})["total"])
}

func TestSavingsHandler_Deposit_UnknownGoal(t *testing.T) {
	r := newSavingsRouter(t)

	w := doJSON(r, "POST", "/savings/deposits", `{"goal_name":"Nothing","amount":100}`)
	assert.Equal(t, 404, w.Code)
}

func TestSavingsHandler_ZeroDepositAppearsInTransactions(t *testing.T) {
	r := newSavingsRouter(t)

	w := doJSON(r, "POST", "/savings/goals", `{"name":"Holiday","target_amount":10000}`)
	require.Equal(t, 200, w.Code)
	w = doJSON(r, "POST", "/savings/deposits", `{"goal_name":"Holiday","amount":0}`)
	require.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/savings/transactions", "")
	resp := parseResponse(t, w)
	list := resp["data"].([]interface{})
	require.Len(t, list, 1)
	tx := list[0].(map[string]interface{})
	assert.Equal(t, "Holiday", tx["goal_name"])
	assert.Equal(t, 0.0, tx["amount"])

	// 目标余额不受零值流水影响
	w = doJSON(r, "GET", "/savings/total", "")
	resp = parseResponse(t, w)
	assert.Equal(t, 0.0, resp["data"].(map[string]interface{})["total"])
}

func TestSavingsHandler_OverfundingAllowed(t *testing.T) {
	r := newSavingsRouter(t)

	w := doJSON(r, "POST", "/savings/goals", `{"name":"Bike","target_amount":100}`)
	require.Equal(t, 200, w.Code)
	w = doJSON(r, "POST", "/savings/deposits", `{"goal_name":"Bike","amount":250}`)
	require.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/savings/goals", "")
	resp := parseResponse(t, w)
	goal := resp["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 250.0, goal["current_amount"])
}
