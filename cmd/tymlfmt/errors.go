package main

import (
	"errors"

	"github.com/tymlgo/tyml/tymlerr"
)

// collectErrors builds a tymlerr.Handler that appends every reported
// error to dst instead of panicking (tymlerr.PanicHandler's default),
// so a CLI run can report every syntax/resolve error it found in one
// message rather than aborting on the first.
func collectErrors(dst *[]error) tymlerr.HandlerFunc {
	return func(err *tymlerr.Error) {
		*dst = append(*dst, errors.New(err.Error()))
	}
}
