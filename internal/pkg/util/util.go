package util

import "reflect"

// IsNil 檢查介面是否為 nil
// 注意：這個函數會同時檢查介面的型別和值
// 介面包著typed nil指標時一樣回傳 true
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}

	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Array, reflect.Chan, reflect.Slice:
		return reflect.ValueOf(i).IsNil()
	}

	return false
}
