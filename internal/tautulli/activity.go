package tautulli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type activityPayload struct {
	Response *struct {
		Result  string    `json:"result"`
		Message *string   `json:"message"`
		Data    *Activity `json:"data"`
	} `json:"response"`
}

// Activity is the subset of the get_activity data the lights care about.
type Activity struct {
	StreamCount *StreamCount `json:"stream_count"`
	Sessions    []Session    `json:"sessions"`
}

type Session struct {
	User  string `json:"user"`
	Title string `json:"full_title"`
	State string `json:"state"`
}

// StreamCount accepts both the string ("3") and numeric (3) encodings Tautulli has used for stream_count.
type StreamCount int

func (s *StreamCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("stream_count %q is not an integer", str)
		}
		*s = StreamCount(n)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("stream_count %s is not a number", b)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("stream_count %s is out of range", b)
	}
	*s = StreamCount(math.Trunc(f))
	return nil
}

// Count is the result of a poll: either a non-negative stream count or nothing.
type Count struct {
	Value   int
	Present bool
}

var Absent = Count{}

func CountOf(n int) Count {
	return Count{Value: n, Present: true}
}

func (c Count) String() string {
	if !c.Present {
		return "absent"
	}
	return strconv.Itoa(c.Value)
}
