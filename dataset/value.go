package dataset

import (
	"database/sql/driver"
	"math"
	"reflect"
)

//Normalize converts missing values to nil: nil pointers, NaN floats and invalid sql.Null* values.
//driver.Valuer values are unwrapped, pointers dereferenced.
func Normalize(value interface{}) interface{} {
	switch actual := value.(type) {
	case nil:
		return nil
	case string, int, int64, int32, bool, []byte:
		return value
	case float64:
		if math.IsNaN(actual) {
			return nil
		}
		return actual
	case float32:
		if math.IsNaN(float64(actual)) {
			return nil
		}
		return actual
	}
	rValue := reflect.ValueOf(value)
	if rValue.Kind() == reflect.Ptr {
		if rValue.IsNil() {
			return nil
		}
		if valuer, ok := value.(driver.Valuer); ok {
			return normalizeValuer(valuer, value)
		}
		return Normalize(rValue.Elem().Interface())
	}
	if valuer, ok := value.(driver.Valuer); ok {
		return normalizeValuer(valuer, value)
	}
	return value
}

func normalizeValuer(valuer driver.Valuer, value interface{}) interface{} {
	actual, err := valuer.Value()
	if err != nil {
		return value
	}
	return Normalize(actual)
}

//IsNull returns true if value normalises to nil
func IsNull(value interface{}) bool {
	return Normalize(value) == nil
}
