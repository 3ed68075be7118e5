package simplify

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ============================================================================
// 配置
// ============================================================================

// DefaultMaxIterations 贪心驱动器的默认迭代上限
const DefaultMaxIterations = 10

// Config 化简驱动器配置
type Config struct {
	// FloorDiv 启用 floordiv 小项删除
	FloorDiv bool `toml:"floor-div"`

	// Mod 启用 mod 小项提取
	Mod bool `toml:"mod"`

	// MaxIterations 每个函数的最大迭代轮数，<= 0 时取默认值
	MaxIterations int `toml:"max-iterations"`
}

// DefaultConfig 默认配置：两个模式都开
func DefaultConfig() Config {
	return Config{
		FloorDiv:      true,
		Mod:           true,
		MaxIterations: DefaultMaxIterations,
	}
}

// fileConfig kunlun.toml 的顶层结构
type fileConfig struct {
	Simplify Config `toml:"simplify"`
}

// LoadConfig 从 TOML 文件加载配置，未出现的字段保持默认值
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := fileConfig{Simplify: DefaultConfig()}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg.Simplify, nil
}
