package serverconfig

import (
	"VillageEmpire/internal/shared/config"
	"os"
)

var Conf Config

// Load 加载 configs/conf.yml（或 cfgName 指定的文件）到 Conf。
func Load(cfgName string) error {
	if err := config.Load(cfgName, &Conf); err != nil {
		return err
	}
	// 环境变量优先；未设置时回填配置中的 jwt_secret，兼容本地开发。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
	return nil
}
