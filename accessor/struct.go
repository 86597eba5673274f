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

type fieldSlot struct {
	index []int
	typ   reflect.Type
	nav   *registry.Navigation
}

// structAccessor resolves metadata names to struct field indexes once and
// then reads and writes through reflect.Value.FieldByIndex.
type structAccessor struct {
	set   *registry.EntitySet
	ptr   reflect.Type
	slots map[string]fieldSlot
}

func newStructAccessor(set *registry.EntitySet) (*structAccessor, error) {
	sa := &structAccessor{
		set:   set,
		ptr:   reflect.PointerTo(set.GoType),
		slots: make(map[string]fieldSlot),
	}

	for _, p := range set.Properties() {
		f, ok := set.GoType.FieldByName(p.Field)
		if !ok {
			return nil, errors.NewMetadataError(set.Name, p.Name, fmt.Sprintf("no struct field %s", p.Field))
		}
		sa.slots[p.Name] = fieldSlot{index: f.Index, typ: f.Type}
	}
	for _, n := range set.Navigations() {
		f, ok := set.GoType.FieldByName(n.Field)
		if !ok {
			return nil, errors.NewMetadataError(set.Name, n.Name, fmt.Sprintf("no struct field %s", n.Field))
		}
		nav := n
		sa.slots[n.Name] = fieldSlot{index: f.Index, typ: f.Type, nav: &nav}
	}
	return sa, nil
}

func (sa *structAccessor) Check(instance any) error {
	_, err := sa.elem(instance)
	return err
}

func (sa *structAccessor) elem(instance any) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, errors.NewValidationError("", "instance is nil")
	}
	rv := reflect.ValueOf(instance)
	if rv.Type() != sa.ptr {
		return reflect.Value{}, errors.NewMetadataError(sa.set.Name, "", fmt.Sprintf("expected %s, got %T", sa.ptr, instance))
	}
	if rv.IsNil() {
		return reflect.Value{}, errors.NewValidationError("", "instance is nil")
	}
	return rv.Elem(), nil
}

func (sa *structAccessor) Get(instance any, name string) (any, error) {
	slot, ok := sa.slots[name]
	if !ok {
		return nil, unknownProperty(sa.set, name)
	}
	ev, err := sa.elem(instance)
	if err != nil {
		return nil, err
	}
	return ev.FieldByIndex(slot.index).Interface(), nil
}

func (sa *structAccessor) Set(instance any, name string, value any) error {
	slot, ok := sa.slots[name]
	if !ok || slot.nav != nil {
		return unknownProperty(sa.set, name)
	}
	ev, err := sa.elem(instance)
	if err != nil {
		return err
	}
	cv, err := Convert(value, slot.typ)
	if err != nil {
		return conversionFailed(sa.set, name, err)
	}
	ev.FieldByIndex(slot.index).Set(cv)
	return nil
}

func (sa *structAccessor) Coerce(name string, value any) (any, error) {
	slot, ok := sa.slots[name]
	if !ok || slot.nav != nil {
		return nil, unknownProperty(sa.set, name)
	}
	cv, err := Convert(value, slot.typ)
	if err != nil {
		return nil, conversionFailed(sa.set, name, err)
	}
	return normalize(cv), nil
}

func (sa *structAccessor) Attach(instance any, navigation string, target any) error {
	slot, ok := sa.slots[navigation]
	if !ok || slot.nav == nil {
		return errors.NewMetadataError(sa.set.Name, navigation, "unknown navigation")
	}
	ev, err := sa.elem(instance)
	if err != nil {
		return err
	}

	tv := reflect.ValueOf(target)
	fv := ev.FieldByIndex(slot.index)
	if slot.nav.Many {
		if !tv.IsValid() || !tv.Type().AssignableTo(slot.typ.Elem()) {
			return errors.NewMetadataError(sa.set.Name, navigation, fmt.Sprintf("cannot append %T to %s", target, slot.typ))
		}
		fv.Set(reflect.Append(fv, tv))
		return nil
	}
	if !tv.IsValid() || !tv.Type().AssignableTo(slot.typ) {
		return errors.NewMetadataError(sa.set.Name, navigation, fmt.Sprintf("cannot assign %T to %s", target, slot.typ))
	}
	fv.Set(tv)
	return nil
}
