package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	"github.com/xyproto/env/v2"
	"go.uber.org/zap"

	"github.com/tangzhangming/kunlun/internal/diag"
	"github.com/tangzhangming/kunlun/internal/parser"
	"github.com/tangzhangming/kunlun/internal/simplify"
)

var (
	configPath = flag.String("config", env.Str("KUNLUN_CONFIG"), "TOML config file (kunlun.toml)")
	output     = flag.String("o", "", "Write rewritten IR to file instead of stdout")
	jsonReport = flag.Bool("json", false, "Print rewrite report as JSON to stderr")
	verbose    = flag.Bool("v", env.Bool("KUNLUN_VERBOSE"), "Enable debug logging")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("kunlun-opt - affine index map simplifier")
		fmt.Println()
		fmt.Println("Usage: kunlun-opt [options] <file.kl>")
		fmt.Println()
		fmt.Println("Options:")
		fmt.Println("  -config <path>  TOML config file (env: KUNLUN_CONFIG)")
		fmt.Println("  -o <path>       Write rewritten IR to file instead of stdout")
		fmt.Println("  -json           Print rewrite report as JSON to stderr")
		fmt.Println("  -v              Enable debug logging (env: KUNLUN_VERBOSE)")
		os.Exit(0)
	}

	filename := flag.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	// 解析
	p := parser.New(string(source), filename)
	module := p.Parse()
	if p.HasErrors() {
		for _, e := range p.Errors() {
			diag.PrintError(os.Stderr, string(source), e.Pos, e.Message)
		}
		os.Exit(1)
	}

	// 配置与日志
	cfg := simplify.DefaultConfig()
	if *configPath != "" {
		cfg, err = simplify.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	// 化简
	driver := simplify.NewDriver(cfg, logger)
	report, err := driver.Run(module)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during simplification: %v\n", err)
		os.Exit(1)
	}

	if *jsonReport {
		data, err := json.Marshal(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, string(data))
	}

	// 输出改写结果
	text := module.String()
	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(text)
}
