package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryStore_AddAndList(t *testing.T) {
	db := setupTestDB(t)
	s := NewCategoryStore(db)
	userID := registerTestUser(t, db, "alice")

	cat, err := s.Add(userID, "Food", 1000)
	require.NoError(t, err)
	assert.Equal(t, "Food", cat.Name)
	assert.Equal(t, 1000.0, cat.Allocated)
	assert.Zero(t, cat.Spent)
	assert.False(t, cat.Pinned)

	// 同一用户下分类名唯一
	_, err = s.Add(userID, "Food", 500)
	assert.ErrorIs(t, err, ErrDuplicate)

	// 不同用户可以用同名分类
	other := registerTestUser(t, db, "bob")
	_, err = s.Add(other, "Food", 500)
	require.NoError(t, err)
}

func TestCategoryStore_AddExpense_Accumulates(t *testing.T) {
	db := setupTestDB(t)
	s := NewCategoryStore(db)
	userID := registerTestUser(t, db, "alice")

	_, err := s.Add(userID, "Food", 1000)
	require.NoError(t, err)

	require.NoError(t, s.AddExpense(userID, "Food", 20))
	require.NoError(t, s.AddExpense(userID, "Food", 30))

	list, err := s.List(userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 50.0, list[0].Spent)
	// 记支出不改变分配额
	assert.Equal(t, 1000.0, list[0].Allocated)

	// 分类不存在
	err = s.AddExpense(userID, "Travel", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryStore_TogglePin(t *testing.T) {
	db := setupTestDB(t)
	s := NewCategoryStore(db)
	userID := registerTestUser(t, db, "alice")

	_, err := s.Add(userID, "Rent", 1200)
	require.NoError(t, err)

	require.NoError(t, s.TogglePin(userID, "Rent"))
	list, err := s.List(userID)
	require.NoError(t, err)
	assert.True(t, list[0].Pinned)

	// 再切一次恢复原状
	require.NoError(t, s.TogglePin(userID, "Rent"))
	list, err = s.List(userID)
	require.NoError(t, err)
	assert.False(t, list[0].Pinned)

	err = s.TogglePin(userID, "Travel")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryStore_List_PinnedFirstThenName(t *testing.T) {
	db := setupTestDB(t)
	s := NewCategoryStore(db)
	userID := registerTestUser(t, db, "alice")

	for _, name := range []string{"Transport", "Food", "Rent", "Entertainment"} {
		_, err := s.Add(userID, name, 100)
		require.NoError(t, err)
	}
	require.NoError(t, s.TogglePin(userID, "Transport"))
	require.NoError(t, s.TogglePin(userID, "Rent"))

	list, err := s.List(userID)
	require.NoError(t, err)
	require.Len(t, list, 4)

	// 置顶组在前，组内按名称升序
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Rent", "Transport", "Entertainment", "Food"}, names)
}

func TestCategoryStore_Delete_ScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	s := NewCategoryStore(db)

	alice := registerTestUser(t, db, "alice")
	bob := registerTestUser(t, db, "bob")

	_, err := s.Add(alice, "Food", 100)
	require.NoError(t, err)
	_, err = s.Add(bob, "Food", 200)
	require.NoError(t, err)

	require.NoError(t, s.Delete(alice, "Food"))

	aliceList, err := s.List(alice)
	require.NoError(t, err)
	assert.Empty(t, aliceList)

	// 同名分类不影响其他用户
	bobList, err := s.List(bob)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, 200.0, bobList[0].Allocated)

	err = s.Delete(alice, "Food")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryStore_TotalSpent(t *testing.T) {
	db := setupTestDB(t)
	s := NewCategoryStore(db)
	userID := registerTestUser(t, db, "alice")

	total, err := s.TotalSpent(userID)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = s.Add(userID, "Food", 100)
	require.NoError(t, err)
	_, err = s.Add(userID, "Rent", 1200)
	require.NoError(t, err)
	require.NoError(t, s.AddExpense(userID, "Food", 80))
	require.NoError(t, s.AddExpense(userID, "Rent", 1200))

	total, err = s.TotalSpent(userID)
	require.NoError(t, err)
	assert.Equal(t, 1280.0, total)
}
