package enum

import (
	"database/sql/driver"
	"fmt"
)

// ExpenseCategory groups dashboard expenses
type ExpenseCategory string

const (
	ExpenseCategoryUtility     ExpenseCategory = "utility"
	ExpenseCategoryRawMaterial ExpenseCategory = "raw_material"
	ExpenseCategorySalary      ExpenseCategory = "salary"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// ExpenseCategories lists every category in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryUtility,
		ExpenseCategoryRawMaterial,
		ExpenseCategorySalary,
		ExpenseCategoryOther,
	}
}

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryUtility, ExpenseCategoryRawMaterial, ExpenseCategorySalary, ExpenseCategoryOther:
		return true
	}
	return false
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = ExpenseCategoryOther
	case string:
		*c = ExpenseCategory(v)
	case []byte:
		*c = ExpenseCategory(v)
	default:
		return fmt.Errorf("cannot scan %T into ExpenseCategory", value)
	}
	return nil
}
