package storage

import (
	"fmt"
	"reflect"

	"github.com/pixil98/go-errors"
)

// AssetVersion is the envelope version written by this package.
const AssetVersion = 1

type ValidatingSpec interface {
	Validate() error
}

// Record is anything a Store can hold. The vnum is carried by the Asset
// envelope, so records keep it out of their serialized body.
type Record interface {
	ValidatingSpec
	Vnum() Vnum
	SetVnum(Vnum)
}

type Asset[T ValidatingSpec] struct {
	Version uint `json:"version"`
	Vnum    Vnum `json:"vnum"`
	Spec    T    `json:"spec"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Version > AssetVersion {
		el.Add(fmt.Errorf("version %d is newer than supported version %d", a.Version, AssetVersion))
	}

	if a.Vnum < 0 {
		el.Add(fmt.Errorf("vnum must not be negative"))
	}

	if v := reflect.ValueOf(a.Spec); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}
