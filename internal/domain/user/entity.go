package user

import (
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("invalid user id")

type (
	// ID is the identity issued by the authentication provider. Every
	// folder and file is scoped by it.
	ID       int64
	Identity struct {
		ID   ID
		Role string
	}
)

func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidID
	}
	return ID(v), nil
}

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }
