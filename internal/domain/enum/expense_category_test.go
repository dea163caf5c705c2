package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseCategoryValid(t *testing.T) {
	for _, c := range ExpenseCategories() {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, ExpenseCategory("rent").Valid())
	assert.False(t, ExpenseCategory("").Valid())
}

func TestExpenseCategoryScan(t *testing.T) {
	var c ExpenseCategory

	require.NoError(t, c.Scan([]byte("salary")))
	assert.Equal(t, ExpenseCategorySalary, c)

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, ExpenseCategoryOther, c)

	assert.Error(t, c.Scan(42))

	v, err := ExpenseCategoryUtility.Value()
	require.NoError(t, err)
	assert.Equal(t, "utility", v)
}
