package service

import (
	"math"
	"time"
)

// GoalXpReward 计算完成一个目标应发放的经验值。
// 四个乘数按固定顺序相乘，只在最后做一次四舍五入：
//  1. 基础值按目标量级分档：<10→50, <50→100, <200→200, 其余→300
//  2. 难度乘数同样分档：<10→1.0, <50→1.2, <200→1.5, 其余→2.0
//  3. 紧迫度看起止跨度天数：≤7→1.5, ≤30→1.2, 其余→1.0；
//     日期异常导致跨度为零或负数时按 ≤7 处理
//  4. 持续性：截止日期尚未到来时 ×1.3，否则 ×1.0
func GoalXpReward(targetValue int, startDate, endDate time.Time, endDateInFuture bool) int {
	var base float64
	var difficulty float64
	switch {
	case targetValue < 10:
		base, difficulty = 50, 1.0
	case targetValue < 50:
		base, difficulty = 100, 1.2
	case targetValue < 200:
		base, difficulty = 200, 1.5
	default:
		base, difficulty = 300, 2.0
	}

	days := int(endDate.Sub(startDate).Hours() / 24)
	var urgency float64
	switch {
	case days <= 7:
		urgency = 1.5
	case days <= 30:
		urgency = 1.2
	default:
		urgency = 1.0
	}

	consistency := 1.0
	if endDateInFuture {
		consistency = 1.3
	}

	return int(math.Round(base * difficulty * urgency * consistency))
}
