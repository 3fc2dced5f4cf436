package ai

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number 接受 JSON 數字或數字字串（逗號可作小數點）；無法解析時為 0
type Number float64

// UnmarshalJSON 寬鬆解析數值
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*n = Number(v)
	return nil
}

// Float64 轉為 float64
func (n Number) Float64() float64 {
	return float64(n)
}
