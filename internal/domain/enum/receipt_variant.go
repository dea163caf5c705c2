package enum

import "fmt"

// ReceiptVariant selects which document is printed for an order
type ReceiptVariant string

const (
	ReceiptVariantChef     ReceiptVariant = "chef"
	ReceiptVariantCustomer ReceiptVariant = "customer"
)

// ParseReceiptVariant accepts "chef" (or "kitchen") and "customer".
func ParseReceiptVariant(s string) (ReceiptVariant, error) {
	switch s {
	case "chef", "kitchen", "kot":
		return ReceiptVariantChef, nil
	case "customer":
		return ReceiptVariantCustomer, nil
	}
	return "", fmt.Errorf("unknown receipt variant %q", s)
}
