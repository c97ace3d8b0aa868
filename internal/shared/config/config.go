// Package config 基于 viper 读取 yaml/json 配置，文件变更时热加载。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DefaultPath 未指定 -config 时使用。
const DefaultPath = "configs/conf.yml"

// EnvPrefix 环境变量覆盖前缀，如 VILLAGE_STORAGE.DRIVER。
const EnvPrefix = "VILLAGE"

var ErrNotFound = errors.New("config file not found")

// 热加载回调与启动时的解码共用 out，串行执行
var decodeMu sync.Mutex

// Load 解析路径、读取并解码到 out，之后监听文件变更。
// 变更后解析失败时 out 保持旧值。
func Load(name string, out any) error {
	path, err := Resolve(name)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if err = v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err = decode(v, out); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	// 此时日志模块可能还没初始化，用标准 log 输出
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := decode(v, out); err != nil {
			log.Printf("config reload %s failed, keep old: %v", e.Name, err)
			return
		}
		log.Printf("config reloaded: %s", e.Name)
	})
	v.WatchConfig()
	return nil
}

// Decode 解码内嵌的配置数据，不监听。
func Decode(raw []byte, format string, out any) error {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("read %s config: %w", format, err)
	}
	return decode(v, out)
}

func decode(v *viper.Viper, out any) error {
	decodeMu.Lock()
	defer decodeMu.Unlock()
	return v.Unmarshal(out, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
	})
}

// Resolve 绝对路径直接校验；相对路径从工作目录逐级向上找，
// 这样在 cmd/xxx 或包目录下跑测试也能找到仓库根的 configs/。
func Resolve(name string) (string, error) {
	if name == "" {
		name = DefaultPath
	}
	if filepath.IsAbs(name) {
		if !exists(name) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; {
		if p := filepath.Join(dir, name); exists(p) {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s (searched upward from %s)", ErrNotFound, name, wd)
		}
		dir = parent
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
