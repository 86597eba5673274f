/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName is the struct tag memstore reads entity metadata from.
//
//	type Photo struct {
//	    Name      string `edm:"Name,key"`
//	    Type      string `edm:"ImageFormat,key"`
//	    ImageURI  string `edm:"ImageUri"`
//	    Rooms     []*Room `edm:"Rooms,nav"`
//	    Building  *Building `edm:"Building,nav=Buildings"`
//	}
//
// Options: key, nav[=TargetSet], type=<EdmType>. Untagged fields and "-" are ignored.
const TagName = "edm"

type fieldTag struct {
	name   string
	key    bool
	nav    bool
	target string
	typ    EdmType
}

func parseTag(field reflect.StructField) (fieldTag, bool, error) {
	raw, ok := field.Tag.Lookup(TagName)
	if !ok || raw == "-" {
		return fieldTag{}, false, nil
	}

	parts := strings.Split(raw, ",")
	tag := fieldTag{name: strings.TrimSpace(parts[0])}
	if tag.name == "" {
		tag.name = field.Name
	}

	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "key":
			tag.key = true
		case opt == "nav":
			tag.nav = true
		case strings.HasPrefix(opt, "nav="):
			tag.nav = true
			tag.target = strings.TrimPrefix(opt, "nav=")
		case strings.HasPrefix(opt, "type="):
			t, err := ParseEdmType(strings.TrimPrefix(opt, "type="))
			if err != nil {
				return fieldTag{}, false, err
			}
			tag.typ = t
		case opt == "":
		default:
			return fieldTag{}, false, fmt.Errorf("unknown %s tag option %q", TagName, opt)
		}
	}

	if tag.key && tag.nav {
		return fieldTag{}, false, fmt.Errorf("field %s cannot be both key and navigation", field.Name)
	}
	return tag, true, nil
}

// describeStruct builds entity metadata from the tags of struct type t.
func describeStruct(setName string, t reflect.Type) (*EntitySet, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("entity type %s is not a struct", t)
	}

	es := &EntitySet{
		Name:     setName,
		TypeName: t.Name(),
		GoType:   t,
		byName:   make(map[string]int),
		newFn:    func() any { return reflect.New(t).Interface() },
	}

	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		tag, ok, err := parseTag(field)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if tag.nav {
			nav := Navigation{Name: tag.name, Field: field.Name, Target: tag.target}
			switch field.Type.Kind() {
			case reflect.Slice:
				nav.Many = true
				nav.elem = field.Type.Elem()
			case reflect.Pointer:
				nav.elem = field.Type
			default:
				return nil, fmt.Errorf("navigation %s must be a slice or pointer, got %s", field.Name, field.Type)
			}
			if es.hasNavigation(nav.Name) {
				return nil, fmt.Errorf("duplicate navigation %q", nav.Name)
			}
			es.navigations = append(es.navigations, nav)
			continue
		}

		typ := tag.typ
		if typ == "" {
			inferred, ok := inferEdmType(field.Type)
			if !ok {
				return nil, fmt.Errorf("cannot infer EDM type of field %s (%s), use type=", field.Name, field.Type)
			}
			typ = inferred
		}
		if !es.addProperty(Property{Name: tag.name, Field: field.Name, Type: typ, Key: tag.key}) {
			return nil, fmt.Errorf("duplicate property %q", tag.name)
		}
	}

	if len(es.keys) == 0 {
		return nil, fmt.Errorf("entity type %s declares no key", t.Name())
	}
	return es, nil
}
