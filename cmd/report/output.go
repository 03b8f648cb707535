package main

import (
	"Statistics/internal/pkg/consts"
	"Statistics/internal/service"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

type output struct {
	w io.Writer
}

func newOutput(w io.Writer) *output {
	return &output{w: w}
}

func (o *output) header(date time.Time, force bool, providers int) {
	title := "日期: " + date.Format(time.DateOnly)
	if force {
		title += " (强制更新)"
	}
	fmt.Fprintln(o.w, "生成统计日报")
	fmt.Fprintln(o.w, strings.Repeat("=", 12))
	fmt.Fprintln(o.w, title)
	fmt.Fprintf(o.w, "! 已找到 %d 个指标提供者\n\n", providers)
}

func (o *output) results(res *service.GenerateReportResult) {
	if len(res.Failed) > 0 {
		fmt.Fprintf(o.w, "[WARNING] %d 个指标计算失败: %s\n", len(res.Failed), strings.Join(res.Failed, ", "))
	}
	if len(res.Generated) == 0 {
		fmt.Fprintln(o.w, "[WARNING] 未生成任何指标数据")
		return
	}

	fmt.Fprintf(o.w, "[OK] 成功生成报告，包含 %d 个指标\n\n", len(res.Generated))

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t名称\t值\t分类")
	for _, m := range res.Generated {
		value := strconv.FormatFloat(m.Value, 'f', -1, 64)
		if m.MetricUnit != nil && *m.MetricUnit != "" {
			value += " " + *m.MetricUnit
		}
		category := consts.UncategorizedCategory
		if m.Category != nil && *m.Category != "" {
			category = *m.Category
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.MetricID, m.MetricName, value, category)
	}
	_ = tw.Flush()
}

func (o *output) failure(err error) {
	fmt.Fprintf(o.w, "[ERROR] 生成日报失败: %v\n", err)
}
