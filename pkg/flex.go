package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number or bool. Forms tend to send
// numbers as strings and APIs the other way around.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
	case '{', '[':
		return fmt.Errorf("cannot use %s as a string value", data)
	default:
		// numbers and bools are kept as written
		*s = FlexString(data)
	}
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexFloat accepts a JSON number or a numeric string. Empty string and null
// are treated as zero. NaN and infinities are rejected, they cannot be stored
// as JSON.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}

	str := strings.TrimSpace(s.String())
	if str == "" {
		*f = 0
		return nil
	}

	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", str)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite number %q", str)
	}
	*f = FlexFloat(v)
	return nil
}
