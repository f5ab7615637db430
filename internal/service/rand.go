package service

// Rand 模擬用的隨機來源，*math/rand.Rand 直接滿足
// 注入而非使用全域rand，測試才能用腳本控制分支走向
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// randBetween 回傳 [min, max] 的整數
func randBetween(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// sampleIndexes 不重複抽出k個index，部分Fisher-Yates
func sampleIndexes(r Rand, n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func choice(r Rand, options []string) string {
	return options[r.Intn(len(options))]
}
