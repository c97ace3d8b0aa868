package db

import (
	"VillageEmpire/internal/shared/serverconfig"
	"strings"
	"testing"
)

func TestDSN_默认端口与字符集(t *testing.T) {
	dsn, err := DSN(serverconfig.MySQLConfig{Host: "127.0.0.1", User: "root", Password: "pw", DBName: "village"})
	if err != nil {
		t.Fatalf("DSN err=%v", err)
	}
	for _, want := range []string{"root:pw@tcp(127.0.0.1:3306)/village", "charset=utf8mb4", "parseTime=true"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn=%q 缺少 %q", dsn, want)
		}
	}
}

func TestDSN_缺少库名报错(t *testing.T) {
	if _, err := DSN(serverconfig.MySQLConfig{Host: "127.0.0.1"}); err == nil {
		t.Fatalf("期望缺少 dbname 时报错")
	}
}
