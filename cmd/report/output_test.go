package main

import (
	"Statistics/internal/model"
	"Statistics/internal/service"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutput_Results(t *testing.T) {
	report := model.NewDailyReport("2024-06-01")
	unit, category := "单", "order"
	orders := report.SetMetricValue("orders", "订单数", 12, &unit, &category)
	users := report.SetMetricValue("users", "用户数", 3.5, nil, nil)

	var buf bytes.Buffer
	out := newOutput(&buf)
	out.header(time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), true, 2)
	out.results(&service.GenerateReportResult{
		Report:    report,
		Generated: []*model.DailyMetric{orders, users},
	})

	text := buf.String()
	assert.Contains(t, text, "日期: 2024-06-01 (强制更新)")
	assert.Contains(t, text, "已找到 2 个指标提供者")
	assert.Contains(t, text, "成功生成报告，包含 2 个指标")
	assert.Contains(t, text, "12 单")
	assert.Contains(t, text, "3.5")
	assert.Contains(t, text, "未分类")
}

func TestOutput_NoMetrics(t *testing.T) {
	var buf bytes.Buffer
	newOutput(&buf).results(&service.GenerateReportResult{Report: model.NewDailyReport("2024-06-01")})

	assert.Contains(t, buf.String(), "未生成任何指标数据")
	assert.NotContains(t, buf.String(), "成功生成报告")
}
