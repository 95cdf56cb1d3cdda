package view

import (
	"context"
	"fmt"
)

// Dependency is one named piece of data a page needs before it can render.
type Dependency struct {
	Key   string
	Fetch func(ctx context.Context) (any, error)
}

func Dep(key string, fetch func(ctx context.Context) (any, error)) Dependency {
	return Dependency{Key: key, Fetch: fetch}
}

// Data holds the outcome of a Load: one value or one error per key.
type Data struct {
	values map[string]any
	errs   map[string]error
	order  []string
}

func (d Data) Value(key string) any {
	return d.values[key]
}

func (d Data) Err(key string) error {
	return d.errs[key]
}

func (d Data) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys lists the dependency keys in the order they were declared.
func (d Data) Keys() []string {
	return append([]string(nil), d.order...)
}

// Load runs the dependencies in declaration order. Once ctx is done the
// remaining dependencies are not fetched and carry ctx.Err().
func Load(ctx context.Context, deps ...Dependency) Data {
	d := Data{
		values: make(map[string]any, len(deps)),
		errs:   map[string]error{},
		order:  make([]string, 0, len(deps)),
	}
	for _, dep := range deps {
		d.order = append(d.order, dep.Key)
		if err := ctx.Err(); err != nil {
			d.errs[dep.Key] = err
			continue
		}
		if dep.Fetch == nil {
			d.errs[dep.Key] = fmt.Errorf("dependency %q has no fetch", dep.Key)
			continue
		}
		v, err := dep.Fetch(ctx)
		if err != nil {
			d.errs[dep.Key] = err
			continue
		}
		d.values[dep.Key] = v
	}
	return d
}

// ValueAs returns the value for key when it has type T.
func ValueAs[T any](d Data, key string) (T, bool) {
	v, ok := d.values[key].(T)
	return v, ok
}
