package option

import (
	"reflect"
)

//Assign assigns supplied options to matching pointers, returns true if assigned at least one
func Assign(options []Option, supplied ...interface{}) bool {
	return assign(options, supplied)
}

func assign(options []Option, supported []interface{}) bool {
	if len(options) == 0 || len(supported) == 0 {
		return false
	}
	var index = make(map[reflect.Type]interface{})
	for i := range supported {
		index[reflect.TypeOf(supported[i]).Elem()] = supported[i]
	}
	assigned := false
	for i := len(options) - 1; i >= 0; i-- {
		option := options[i]
		if option == nil {
			continue
		}
		optionValue := reflect.ValueOf(option)
		target, ok := index[optionValue.Type()]
		if !ok {
			for k, v := range index {
				if optionValue.Type().AssignableTo(k) {
					target = v
					ok = true
					break
				}
			}
		}
		if !ok {
			continue
		}
		assigned = true
		reflect.ValueOf(target).Elem().Set(optionValue)
	}
	return assigned
}
