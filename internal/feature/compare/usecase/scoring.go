package usecase

// ComputeComposite は正規化した重みで指標を加重平均したスコアを返します。
// 重みの合計が0以下なら0、結果は[0,1]に丸めます。対応する指標がない重みは0として扱います。
func ComputeComposite(weights, metrics map[string]float64) float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	var score float64
	for k, w := range weights {
		score += w / total * metrics[k]
	}
	return clamp(score, 0, 1)
}

// ComputeTorque はスコアの変化量を[-1,1]に丸めて返します。
func ComputeTorque(before, after float64) float64 {
	return clamp(after-before, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	return min(max(v, lo), hi)
}
