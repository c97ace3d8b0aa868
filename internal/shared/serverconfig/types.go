package serverconfig

import "time"

type Config struct {
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	GRPCServer GRPCServerConfig `yaml:"grpcserver" mapstructure:"grpcserver"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	Engine     EngineConfig     `yaml:"engine" mapstructure:"engine"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// NodeID 雪花 id 的节点号 0..1023
	NodeID int64 `yaml:"node_id" mapstructure:"node_id"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// WsPath 为空时不挂载 websocket
	WsPath string `yaml:"ws_path" mapstructure:"ws_path"`
}

type GRPCServerConfig struct {
	Host    string `yaml:"host" mapstructure:"host"`
	Port    int    `yaml:"port" mapstructure:"port"`
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
}

// 存储驱动
const (
	StorageMemory  = "memory"
	StorageMongoDB = "mongodb"
	StorageMySQL   = "mysql"
)

type StorageConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	// AutoMigrate 启动时建表（开发环境使用）
	AutoMigrate bool `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

// EngineConfig 村庄模拟引擎的运行参数。
type EngineConfig struct {
	ConstructionPollMs int `yaml:"construction_poll_ms" mapstructure:"construction_poll_ms"` // 建造倒计时轮询
	ResourcePollMs     int `yaml:"resource_poll_ms" mapstructure:"resource_poll_ms"`         // 资源刷新轮询
	AskTimeoutMs       int `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	PassivateAfterS    int `yaml:"passivate_after_s" mapstructure:"passivate_after_s"` // 空闲多久后回收村庄 actor
	InitialSpeedUps    int `yaml:"initial_speed_up_points" mapstructure:"initial_speed_up_points"`
}

func (c EngineConfig) ConstructionPoll() time.Duration {
	return msOrDefault(c.ConstructionPollMs, time.Second)
}

func (c EngineConfig) ResourcePoll() time.Duration {
	return msOrDefault(c.ResourcePollMs, time.Minute)
}

func (c EngineConfig) AskTimeout() time.Duration {
	return msOrDefault(c.AskTimeoutMs, 3*time.Second)
}

func (c EngineConfig) PassivateAfter() time.Duration {
	if c.PassivateAfterS <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.PassivateAfterS) * time.Second
}

func msOrDefault(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
