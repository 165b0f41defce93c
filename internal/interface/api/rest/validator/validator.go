package validator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"storage-api/internal/interface/api/rest/dto/position"
)

const (
	maxPositionCodeLen = 50
	maxPositionNameLen = 100
	maxFolderNameLen   = 255
)

var (
	ErrInvalidID  = errors.New("id must be a positive integer")
	ErrFolderName = errors.New("folder name is required and must not contain '/' or control characters")
	ErrEmptyPatch = errors.New("at least one of positionCode or positionName is required")
)

func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// ParseOptionalID treats an empty value as "not given".
func ParseOptionalID(s string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := ParseID(s)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func ValidatePositionCreate(r position.CreateRequest) map[string]string {
	errs := make(map[string]string)

	checkField(errs, "positionCode", strings.TrimSpace(r.PositionCode), maxPositionCodeLen)
	checkField(errs, "positionName", strings.TrimSpace(r.PositionName), maxPositionNameLen)

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidatePositionPatch(r position.PatchRequest) map[string]string {
	if r.PositionCode == nil && r.PositionName == nil {
		return map[string]string{"body": ErrEmptyPatch.Error()}
	}

	errs := make(map[string]string)
	if r.PositionCode != nil {
		checkField(errs, "positionCode", strings.TrimSpace(*r.PositionCode), maxPositionCodeLen)
	}
	if r.PositionName != nil {
		checkField(errs, "positionName", strings.TrimSpace(*r.PositionName), maxPositionNameLen)
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func checkField(errs map[string]string, field, v string, maxLen int) {
	if v == "" {
		errs[field] = field + " is required"
	} else if utf8.RuneCountInString(v) > maxLen {
		errs[field] = field + " must be at most " + strconv.Itoa(maxLen) + " characters"
	}
}

// ValidateFolderName returns the trimmed name.
func ValidateFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || utf8.RuneCountInString(name) > maxFolderNameLen {
		return "", ErrFolderName
	}
	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return "", ErrFolderName
		}
	}

	return name, nil
}
