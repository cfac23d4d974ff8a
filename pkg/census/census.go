// Package census 负责床位数到人力需求档位的解析
package census

import (
	"math"

	"github.com/hupai/hupai/pkg/model"
)

// Resolve 根据床位数解析人力需求档位
// 床位数未落入任何档位时回落到最高档（按 MaxCensus 取最大），
// 未配置任何档位时返回 (zero, false)
func Resolve(bands []model.CensusBand, census int) (model.CensusBand, bool) {
	if len(bands) == 0 {
		return model.CensusBand{}, false
	}
	for _, b := range bands {
		if b.Matches(census) {
			return b, true
		}
	}
	highest := bands[0]
	for _, b := range bands[1:] {
		if b.MaxCensus > highest.MaxCensus {
			highest = b
		}
	}
	return highest, true
}

// RequiredNurses 根据档位与实际床位数计算最少护士人数
// 取患护比折算值与档位注册护士下限中的较大者
func RequiredNurses(band model.CensusBand, census int) int {
	required := band.RequiredRN
	if band.PatientsPerNurse > 0 && census > 0 {
		byRatio := int(math.Ceil(float64(census) / band.PatientsPerNurse))
		if byRatio > required {
			required = byRatio
		}
	}
	return required
}
