package entity

// Condition состояние участка листа.
type Condition string

const (
	ConditionFresh   Condition = "fresh"
	ConditionWilted  Condition = "wilted"
	ConditionRotten  Condition = "rotten"
	ConditionUnknown Condition = "unknown"
)

type conditionRule struct {
	label Condition
	match func(h, s, v float64) bool
}

// conditionRules проверяются по порядку, побеждает первое совпадение.
// Диапазоны пересекаются, поэтому порядок менять нельзя.
var conditionRules = []conditionRule{
	{ConditionFresh, func(h, s, v float64) bool {
		return h >= 35 && h <= 85 && s > 100 && v > 70
	}},
	{ConditionWilted, func(h, s, v float64) bool {
		return h >= 25 && h < 35 && s >= 40 && s <= 100 && v >= 40 && v <= 80
	}},
	{ConditionRotten, func(h, s, v float64) bool {
		return h < 25 || h > 90 || s < 50 || v < 60
	}},
}

// ClassifyCondition сопоставляет средний цвет участка с состоянием.
func ClassifyCondition(hue, saturation, value float64) Condition {
	for _, r := range conditionRules {
		if r.match(hue, saturation, value) {
			return r.label
		}
	}
	return ConditionUnknown
}
