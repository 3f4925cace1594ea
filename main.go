package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// 构建信息，由发布流程通过 -ldflags 注入
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var logFlags = logger.Flags{
	Level:       "info",
	LogToStderr: true,
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "labelkit",
		Short: "把记录数据排版为 ZPL 标签",
		Long: `labelkit 读取标签模板（.label）与记录数据（YAML/JSON），
在固定区域内自动缩小字号与折行，输出可直接发送给标签打印机的 ZPL 文档。`,
		Example: `  labelkit render --template shipping.label --data orders.yaml --out orders.zpl
  labelkit render -t shipping.label -d orders.yaml --preview proof.pdf
  labelkit test-label -t shipping.label`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Configure(logFlags)
		},
	}
	bindLogFlags(root.PersistentFlags())

	root.AddCommand(newRenderCommand(), newTestLabelCommand(), newVersionCommand())
	return root
}

func bindLogFlags(flags *pflag.FlagSet) {
	flags.CountVarP(&logFlags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&logFlags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&logFlags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "打印版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "labelkit %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
		},
	}
}
