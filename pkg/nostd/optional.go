package nostd

import (
	"bytes"
	"encoding/json"
)

// Optional 三态字段：未提供 / 显式null / 有值
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some 构造一个有值的Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null 构造一个显式null的Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// HasValue 是否提供了非null的值
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr 值存在时返回指针，否则返回nil
func (o Optional[T]) Ptr() *T {
	if !o.HasValue() {
		return nil
	}
	v := o.Value
	return &v
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
