/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package accessor

import (
	"fmt"
	"reflect"

	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/registry"
)

// recordAccessor stores values in *registry.Record instances using the Go
// type of each property's declared EDM kind.
type recordAccessor struct {
	set   *registry.EntitySet
	types map[string]reflect.Type
	navs  map[string]registry.Navigation
}

func newRecordAccessor(set *registry.EntitySet) *recordAccessor {
	ra := &recordAccessor{
		set:   set,
		types: make(map[string]reflect.Type),
		navs:  make(map[string]registry.Navigation),
	}
	for _, p := range set.Properties() {
		ra.types[p.Name] = p.Type.GoType()
	}
	for _, n := range set.Navigations() {
		ra.navs[n.Name] = n
	}
	return ra
}

func (ra *recordAccessor) Check(instance any) error {
	_, err := ra.record(instance)
	return err
}

func (ra *recordAccessor) record(instance any) (*registry.Record, error) {
	if instance == nil {
		return nil, errors.NewValidationError("", "instance is nil")
	}
	rec, ok := instance.(*registry.Record)
	if !ok {
		return nil, errors.NewMetadataError(ra.set.Name, "", fmt.Sprintf("expected *registry.Record, got %T", instance))
	}
	if rec == nil {
		return nil, errors.NewValidationError("", "instance is nil")
	}
	if rec.EntitySet() != ra.set.Name {
		return nil, errors.NewMetadataError(ra.set.Name, "", fmt.Sprintf("record belongs to %s", rec.EntitySet()))
	}
	return rec, nil
}

func (ra *recordAccessor) Get(instance any, name string) (any, error) {
	rec, err := ra.record(instance)
	if err != nil {
		return nil, err
	}
	if typ, ok := ra.types[name]; ok {
		v, present := rec.Get(name)
		if !present {
			return reflect.Zero(typ).Interface(), nil
		}
		return v, nil
	}
	if nav, ok := ra.navs[name]; ok {
		v, present := rec.Get(name)
		if !present {
			if nav.Many {
				return []*registry.Record(nil), nil
			}
			return (*registry.Record)(nil), nil
		}
		return v, nil
	}
	return nil, unknownProperty(ra.set, name)
}

func (ra *recordAccessor) Set(instance any, name string, value any) error {
	typ, ok := ra.types[name]
	if !ok {
		return unknownProperty(ra.set, name)
	}
	rec, err := ra.record(instance)
	if err != nil {
		return err
	}
	cv, err := Convert(value, typ)
	if err != nil {
		return conversionFailed(ra.set, name, err)
	}
	rec.Put(name, cv.Interface())
	return nil
}

func (ra *recordAccessor) Coerce(name string, value any) (any, error) {
	typ, ok := ra.types[name]
	if !ok {
		return nil, unknownProperty(ra.set, name)
	}
	cv, err := Convert(value, typ)
	if err != nil {
		return nil, conversionFailed(ra.set, name, err)
	}
	return normalize(cv), nil
}

func (ra *recordAccessor) Attach(instance any, navigation string, target any) error {
	nav, ok := ra.navs[navigation]
	if !ok {
		return errors.NewMetadataError(ra.set.Name, navigation, "unknown navigation")
	}
	rec, err := ra.record(instance)
	if err != nil {
		return err
	}
	tr, ok := target.(*registry.Record)
	if !ok || tr == nil || tr.EntitySet() != nav.Target {
		return errors.NewMetadataError(ra.set.Name, navigation, fmt.Sprintf("expected a %s record, got %T", nav.Target, target))
	}

	if !nav.Many {
		rec.Put(navigation, tr)
		return nil
	}
	current, _ := rec.Get(navigation)
	list, _ := current.([]*registry.Record)
	rec.Put(navigation, append(list, tr))
	return nil
}
