package visitors

import "coilscan-core/coils"

// PassThrough returns the result unchanged.
type PassThrough struct{}

func (PassThrough) Visit(r coils.Result) (keep bool, out coils.Result, err error) {
	return true, r, nil
}
