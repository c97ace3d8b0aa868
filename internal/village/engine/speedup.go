package engine

import (
	"math"

	"VillageEmpire/internal/village/domain"
)

// SpeedUpBaseCost 资源加速第一次的价格，之后每次 ×1.5。
var SpeedUpBaseCost = domain.Resources{Wood: 100, Stone: 50, Iron: 30}

const (
	SpeedUpGrowth = 1.5
	// SpeedUpReductionMs 资源加速每次减少 5 分钟
	SpeedUpReductionMs = int64(5 * 60 * 1000)
	// MinRemainingMs 资源加速后至少还剩 10 秒
	MinRemainingMs = int64(10 * 1000)
)

// SpeedUpCost 第 count+1 次资源加速的价格：floor(base × 1.5^count)。
func SpeedUpCost(count int) domain.Resources {
	if count < 0 {
		count = 0
	}
	factor := math.Pow(SpeedUpGrowth, float64(count))
	var out domain.Resources
	for _, r := range domain.AllResources {
		out.Set(r, int64(math.Floor(float64(SpeedUpBaseCost.Get(r))*factor)))
	}
	return out
}

// ResourceSpeedUpEnd 资源加速后的结束时间：max(now + 10s, end − 5min)，不会晚于原结束时间。
// 剩余不足 10 秒时结果等于 endMs，调用方应先用 CanSpeedUpWithResources 拒绝。
func ResourceSpeedUpEnd(nowMs, endMs int64) int64 {
	return min(endMs, max(nowMs+MinRemainingMs, endMs-SpeedUpReductionMs))
}

// CanSpeedUpWithResources 剩余时间超过 MinRemainingMs 才值得资源加速。
func CanSpeedUpWithResources(nowMs, endMs int64) bool {
	return endMs-nowMs > MinRemainingMs
}
