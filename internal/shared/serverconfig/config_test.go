package serverconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConf = `
httpserver:
  host: 127.0.0.1
  port: 8088
  ws_path: /ws
storage:
  driver: memory
engine:
  construction_poll_ms: 500
  initial_speed_up_points: 3
log:
  level: debug
jwt_secret: from-file
`

func TestLoad_读取配置并回填JWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(path, []byte(sampleConf), 0o644); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if Conf.HTTPServer.Port != 8088 || Conf.HTTPServer.WsPath != "/ws" {
		t.Fatalf("httpserver 解析不符合预期: %+v", Conf.HTTPServer)
	}
	if Conf.Storage.Driver != StorageMemory {
		t.Fatalf("期望 storage.driver=memory, got=%q", Conf.Storage.Driver)
	}
	if got := Conf.Engine.ConstructionPoll(); got != 500*time.Millisecond {
		t.Fatalf("期望建造轮询 500ms, got=%v", got)
	}
	if got := Conf.Engine.ResourcePoll(); got != time.Minute {
		t.Fatalf("期望资源轮询默认 1min, got=%v", got)
	}
	if Conf.Engine.InitialSpeedUps != 3 {
		t.Fatalf("期望初始加速点 3, got=%d", Conf.Engine.InitialSpeedUps)
	}
	if os.Getenv("JWT_SECRET") != "from-file" {
		t.Fatalf("期望 JWT_SECRET 由配置回填")
	}
}

func TestLoad_文件不存在返回错误(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("期望文件不存在时返回错误")
	}
}
