package parser

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	rferrors "rfhistoric/internal/errors"
)

// flexInt decodes a JSON counter given either as a number or as a numeric string
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := atoi(s)
		if err != nil {
			return err
		}
		f.value, f.set = v, true
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return rferrors.WrapFormat(err, "invalid counter")
	}
	if n != math.Trunc(n) {
		return rferrors.Formatf("invalid counter %s: not an integer", string(data))
	}
	f.value, f.set = int(n), true
	return nil
}

// or returns the decoded value, def when the key was missing or null
func (f flexInt) or(def int) int {
	if !f.set {
		return def
	}
	return f.value
}

// atoi parses an integer counter, surrounding whitespace allowed
func atoi(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, rferrors.WrapFormat(err, "invalid counter "+strconv.Quote(s))
	}
	return v, nil
}

// attrInt parses an XML attribute counter, 0 when absent
func attrInt(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return atoi(s)
}

// attrFloat parses an XML attribute float, 0 when absent
func attrFloat(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, rferrors.WrapFormat(err, "invalid number "+strconv.Quote(s))
	}
	return v, nil
}
