package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// TestParseLevel 测试日志级别解析
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"大小写不敏感", " DEBUG ", slog.LevelDebug},
		{"未知级别默认info", "unknown", slog.LevelInfo},
		{"空字符串默认info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLevel(tt.input)
			if got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestLevelTag 测试日志级别标签
func TestLevelTag(t *testing.T) {
	tests := []struct {
		name     string
		level    slog.Level
		expected string
	}{
		{"error", slog.LevelError, "ERROR"},
		{"warn", slog.LevelWarn, "WARN "},
		{"info", slog.LevelInfo, "INFO "},
		{"debug", slog.LevelDebug, "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levelTag(tt.level)
			if got != tt.expected {
				t.Errorf("levelTag(%v) = %q, 期望 %q", tt.level, got, tt.expected)
			}
		})
	}
}

// TestFormatAttr 测试属性格式化
func TestFormatAttr(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		attr     slog.Attr
		expected string
	}{
		{"无分组", "", slog.String("key", "value"), "  key=value"},
		{"有分组", "group", slog.String("key", "value"), "  group.key=value"},
		{"整数值", "", slog.Int("tick_rate", 60), "  tick_rate=60"},
		{"浮点值", "", slog.Float64("yaw", 2), "  yaw=2.000"},
		{"布尔值", "", slog.Bool("jumping", true), "  jumping=true"},
		{
			"分组属性",
			"",
			slog.Group("camera", slog.Float64("pitch", -90), slog.String("tag", "MainCamera")),
			"  camera.pitch=-90.000  camera.tag=MainCamera",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatAttr(tt.group, tt.attr)
			if got != tt.expected {
				t.Errorf("formatAttr(%q, %v) = %q, 期望 %q", tt.group, tt.attr, got, tt.expected)
			}
		})
	}
}

// TestConsoleHandlerEnabled 测试 consoleHandler 的级别过滤
func TestConsoleHandlerEnabled(t *testing.T) {
	h := &consoleHandler{level: slog.LevelInfo}

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info 级别应该被启用")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error 级别应该被启用")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug 级别不应该被启用")
	}
}

// TestConsoleHandlerHandle 测试 consoleHandler 的日志输出
func TestConsoleHandlerHandle(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler("console", slog.LevelDebug, &buf)

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "controller ready", 0)
	record.AddAttrs(slog.String("camera", "MainCamera"))

	if err := h.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() 返回错误: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"12:00:00", "INFO", "controller ready", "camera=MainCamera"} {
		if !strings.Contains(output, want) {
			t.Errorf("输出应包含 %q, 实际: %q", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("输出应以换行符结尾, 实际: %q", output)
	}
}

// TestConsoleHandlerWithAttrs 测试 WithAttrs 创建新 handler
func TestConsoleHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "controller")})

	// 原始 handler 不应该受影响
	if len(h.attrs) != 0 {
		t.Error("原始 handler 的 attrs 不应该被修改")
	}

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	if err := h2.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() 返回错误: %v", err)
	}

	if output := buf.String(); !strings.Contains(output, "component=controller") {
		t.Errorf("输出应包含预设属性, 实际: %q", output)
	}
}

// TestConsoleHandlerWithNestedGroup 测试嵌套分组
func TestConsoleHandlerWithNestedGroup(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithGroup("host").WithGroup("loop")

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	record.AddAttrs(slog.Int("tick_rate", 60))
	if err := h2.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() 返回错误: %v", err)
	}

	if output := buf.String(); !strings.Contains(output, "host.loop.tick_rate=60") {
		t.Errorf("输出应包含嵌套分组前缀, 实际: %q", output)
	}
}

// TestNewHandlerFormats 测试不同格式的 handler 选择
func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler("json", slog.LevelInfo, &buf)
	slog.New(h).Info("jump started", "time_in_air", 0.0)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("json 输出无法解析: %v (%q)", err, buf.String())
	}
	if line["msg"] != "jump started" {
		t.Errorf("msg = %v", line["msg"])
	}

	if _, ok := newHandler("text", slog.LevelInfo, &buf).(*slog.TextHandler); !ok {
		t.Error("text 格式应返回 TextHandler")
	}
	for _, format := range []string{"console", ""} {
		if _, ok := newHandler(format, slog.LevelInfo, &buf).(*consoleHandler); !ok {
			t.Errorf("格式 %q 应返回 consoleHandler", format)
		}
	}
}

// TestCloseWithoutFile 测试未配置文件时 Close 安全
func TestCloseWithoutFile(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
}
