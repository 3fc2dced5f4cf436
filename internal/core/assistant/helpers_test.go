package assistant

// fixedPicker 總是回傳同一個索引（超出範圍時取最後一個）
type fixedPicker int

func (f fixedPicker) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}
