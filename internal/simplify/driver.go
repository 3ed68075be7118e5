package simplify

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/kunlun/internal/ir"
	"github.com/tangzhangming/kunlun/internal/rangeval"
)

// ============================================================================
// 贪心改写驱动器
// ============================================================================

// Driver 在模块的所有访存操作上反复应用改写模式直到收敛
//
// 每轮先对函数做一遍完整的范围分析，再遍历访存逐个尝试模式；
// 轮末清理物化留下的死操作。一轮没有任何改写即收敛。模式都是
// 幂等的，对已化简的表达式重跑必然报告不适用，所以迭代上限
// 只是兜底。
type Driver struct {
	cfg      Config
	logger   *zap.Logger
	patterns []Pattern
}

// NewDriver 按配置装配驱动器；logger 为 nil 时不输出日志
func NewDriver(cfg Config, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	var patterns []Pattern
	if cfg.FloorDiv {
		patterns = append(patterns, FloorDivPattern{})
	}
	if cfg.Mod {
		patterns = append(patterns, ModPattern{})
	}
	return &Driver{cfg: cfg, logger: logger, patterns: patterns}
}

// Run 化简模块中的所有函数，返回改写报告
//
// 单个函数出错不会中断其他函数，错误聚合后一起返回。
func (d *Driver) Run(m *ir.Module) (*Report, error) {
	report := &Report{}
	var errs error
	for _, f := range m.Funcs {
		fr, err := d.runFunc(f)
		errs = multierr.Append(errs, err)
		report.Funcs = append(report.Funcs, fr)
	}
	return report, errs
}

// runFunc 在单个函数上迭代到收敛
func (d *Driver) runFunc(f *ir.Func) (FuncReport, error) {
	fr := FuncReport{Name: f.Name, PatternHits: make(map[string]int)}
	var errs error

	maxIter := d.cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		analysis := rangeval.NewAnalysis(f)

		f.WalkAccesses(func(b *ir.Builder, access ir.AccessOp) {
			for _, p := range d.patterns {
				ch, err := p.MatchAndRewrite(b, access, analysis)
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("func %s: pattern %s: %w", f.Name, p.Name(), err))
					continue
				}
				if ch {
					changed = true
					fr.PatternHits[p.Name()]++
					d.logger.Debug("rewrote access",
						zap.String("func", f.Name),
						zap.String("pattern", p.Name()),
						zap.String("buffer", access.BufferName()))
				}
			}
		})

		if removed := ir.EliminateDeadOps(f); removed > 0 {
			d.logger.Debug("cleaned up materialized ops",
				zap.String("func", f.Name),
				zap.Int("removed", removed))
		}

		if !changed {
			break
		}
		fr.Changed = true
		fr.Iterations = iter + 1
	}
	return fr, errs
}

// ============================================================================
// 改写报告
// ============================================================================

// Report 一次驱动器运行的汇总
type Report struct {
	Funcs []FuncReport `json:"funcs"`
}

// Changed 是否有任何函数被改写
func (r *Report) Changed() bool {
	for _, fr := range r.Funcs {
		if fr.Changed {
			return true
		}
	}
	return false
}

// FuncReport 单个函数的改写结果
type FuncReport struct {
	Name        string         `json:"name"`
	Changed     bool           `json:"changed"`
	Iterations  int            `json:"iterations,omitempty"`
	PatternHits map[string]int `json:"pattern_hits,omitempty"`
}
