package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ImageList is an ordered list of uploaded image filenames stored in a
// single text column as comma-separated values. Filenames are generated
// by the upload layer and never contain commas.
type ImageList []string

// Value implements driver.Valuer
func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

// Scan implements sql.Scanner
func (l *ImageList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported image list source type %T", src)
	}

	if raw == "" {
		*l = nil
		return nil
	}
	*l = strings.Split(raw, ",")
	return nil
}

// GormDataType keeps the column a plain TEXT across dialects
func (ImageList) GormDataType() string {
	return "text"
}
