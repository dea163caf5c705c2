package enum

import (
	"database/sql/driver"
	"fmt"
)

// OrderSource records the channel an order was taken on
type OrderSource string

const (
	OrderSourceStore  OrderSource = "store"
	OrderSourcePOS    OrderSource = "pos"
	OrderSourceOnline OrderSource = "online"
)

func (s OrderSource) Valid() bool {
	switch s {
	case OrderSourceStore, OrderSourcePOS, OrderSourceOnline:
		return true
	}
	return false
}

func (s OrderSource) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderSource) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = OrderSourceStore
	case string:
		*s = OrderSource(v)
	case []byte:
		*s = OrderSource(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderSource", value)
	}
	return nil
}
