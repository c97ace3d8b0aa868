package actors

import "time"

// Options 村庄 actor 的运行参数。
type Options struct {
	ConstructionPoll time.Duration
	ResourcePoll     time.Duration
	// PassivateAfter 空闲多久后回收，<=0 使用默认值
	PassivateAfter time.Duration
	// IOTimeout 单次存储调用超时
	IOTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.ConstructionPoll <= 0 {
		o.ConstructionPoll = time.Second
	}
	if o.ResourcePoll <= 0 {
		o.ResourcePoll = time.Minute
	}
	if o.PassivateAfter <= 0 {
		o.PassivateAfter = 10 * time.Minute
	}
	if o.IOTimeout <= 0 {
		o.IOTimeout = 3 * time.Second
	}
	return o
}
