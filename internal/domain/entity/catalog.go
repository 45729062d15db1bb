// Package entity 定义领域实体
package entity

// Sectors 支持的业务领域（固定集合）
var Sectors = []string{
	"fitness",
	"finance",
	"fashion",
	"beauty",
	"productivity",
	"pets",
	"education",
	"wellness",
	"technology",
	"food",
	"travel",
	"real_estate",
}

// HookTypes 支持的开场钩子类型（固定集合）
var HookTypes = []string{
	"question",
	"bold_claim",
	"relatable",
	"shocking",
	"curiosity",
	"statistic",
	"story",
}

// PerformanceHigh 参考示例的高表现档位标记
const PerformanceHigh = "high"

// IsSupportedSector 检查领域是否受支持
func IsSupportedSector(sector string) bool {
	for _, s := range Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

// IsSupportedHookType 检查钩子类型是否受支持
func IsSupportedHookType(hookType string) bool {
	for _, h := range HookTypes {
		if h == hookType {
			return true
		}
	}
	return false
}
