package settings

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// 统一使用 Config 后缀命名配置结构体
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Mode    string `mapstructure:"mode"`
	Version string `mapstructure:"version"`
	Port    int    `mapstructure:"port"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	FileName   string `mapstructure:"file_name"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// StoreConfig 本地存储配置
// Path 为空时使用纯内存存储，进程退出后数据丢失
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type SnowflakeConfig struct {
	StartTime string `mapstructure:"start_time"`
	MachineID int64  `mapstructure:"machine_id"`
}

type RateLimitConfig struct {
	FillInterval string `mapstructure:"fill_interval"` // 令牌填充间隔（如 "10ms"）
	Capacity     int64  `mapstructure:"capacity"`      // 令牌桶容量
}

// OAuthConfig 模拟第三方授权的配置
// Delay 模拟授权回调的网络延迟（如 "1500ms"）
type OAuthConfig struct {
	Delay string `mapstructure:"delay"`
}

// 这里使用指针是为了区分配置缺失和零值:
// 配置文件中没有对应区块时字段保持 nil，而不是难以分辨的零值结构体
type Config struct {
	App       *AppConfig       `mapstructure:"app"`
	Log       *LogConfig       `mapstructure:"log"`
	Store     *StoreConfig     `mapstructure:"store"`
	Snowflake *SnowflakeConfig `mapstructure:"snowflake"`
	RateLimit *RateLimitConfig `mapstructure:"ratelimit"`
	OAuth     *OAuthConfig     `mapstructure:"oauth"`
}

// Conf 全局配置对象，配置在整个应用生命周期内都需要访问
var Conf = new(Config)

func Init(filePath string) (err error) {
	viper.SetConfigFile(filePath)

	if err = viper.ReadInConfig(); err != nil {
		return fmt.Errorf("viper.ReadInConfig() failed: %w", err)
	}

	// 将读取的配置信息反序列化到 Conf 变量中
	if err = viper.Unmarshal(Conf); err != nil {
		return fmt.Errorf("viper.Unmarshal() failed: %w", err)
	}

	// 监控配置文件变化，支持热加载
	viper.WatchConfig()
	viper.OnConfigChange(func(in fsnotify.Event) {
		fmt.Println("config file changed, reloading...")
		// 重新反序列化，否则代码中使用的还是旧值
		if err := viper.Unmarshal(Conf); err != nil {
			fmt.Printf("config hot reload failed: %v\n", err)
		}
	})

	return
}
