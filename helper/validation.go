package helper

import (
	"fmt"
	"reflect"
	"strings"
)

// ValidateStructIsPopulated will check if any mandatory fields in cfg are missing.
// It uses struct tags to determine which fields are mandatory and the error text to fetch.
// The error text returned is just a list of the struct tags with key "errorTxt".
func ValidateStructIsPopulated(cfg interface{}) (err error) {
	errs := make([]string, 0)
	GetStructErrorTxt4UnsetFields(cfg, &errs)
	if len(errs) > 0 {
		err = fmt.Errorf("please supply values for %v", strings.Join(errs, ", "))
	}
	return
}

// GetStructErrorTxt4UnsetFields will reflect over interface i and build a slice containing error text strings for any
// struct fields that are unset i.e. are the zero value for the given field type.
// The error text strings are fetched from the errorTxt tags values found in the supplied interface (struct)
// where tag mandatory:"yes" is set.
// Nested structs and pointers to structs are descended into; nil pointers are skipped.
func GetStructErrorTxt4UnsetFields(i interface{}, errTags *[]string) {
	if i == nil {
		return
	}
	val := reflect.ValueOf(i)
	for val.Kind() == reflect.Ptr { // while we have a pointer...
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()
	for idx := 0; idx < val.NumField(); idx++ { // for each field in the struct...
		sf := typ.Field(idx)
		if sf.PkgPath != "" { // if the field is not exported...
			continue
		}
		f := val.Field(idx)
		switch f.Kind() {
		case reflect.Struct, reflect.Ptr: // if we need to go down another level...
			if f.Kind() == reflect.Ptr && f.IsNil() && sf.Tag.Get("mandatory") == "yes" {
				*errTags = append(*errTags, sf.Tag.Get("errorTxt"))
				continue
			}
			GetStructErrorTxt4UnsetFields(f.Interface(), errTags)
		case reflect.Slice, reflect.Map:
			if f.Len() == 0 && sf.Tag.Get("mandatory") == "yes" {
				*errTags = append(*errTags, sf.Tag.Get("errorTxt"))
			}
		default: // extract tags from this struct field...
			if f.IsZero() && sf.Tag.Get("mandatory") == "yes" { // if the field is its zero value and it is mandatory...
				*errTags = append(*errTags, sf.Tag.Get("errorTxt"))
			}
		}
	}
}
