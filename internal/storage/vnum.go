package storage

import (
	"fmt"
	"strconv"
	"strings"
)

// Vnum is the numeric identifier of a prototype, unique within its store.
type Vnum int

// Nothing marks a vnum field that does not point anywhere.
const Nothing Vnum = -1

// BlockSize is the number of vnums persisted together in one library file.
const BlockSize = 100

func (v Vnum) String() string {
	return strconv.Itoa(int(v))
}

// Block returns the library block the vnum is persisted in.
func (v Vnum) Block() int {
	return int(v) / BlockSize
}

// ParseVnum parses a non-negative vnum.
func ParseVnum(s string) (Vnum, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Nothing, fmt.Errorf("%q is not a valid vnum", s)
	}
	if n < 0 {
		return Nothing, fmt.Errorf("vnum %d is negative", n)
	}
	return Vnum(n), nil
}
