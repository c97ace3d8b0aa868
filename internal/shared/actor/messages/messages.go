package messages

// VillageMessage 发往村庄 actor 的请求，由 manager 按 owner 路由。
type VillageMessage interface {
	OwnerID() int64
	TraceID() string
}

type VillageBaseMessage struct {
	OwnerId int64
	// TraceId 透传到 actor 内部日志
	TraceId string
}

func (m VillageBaseMessage) OwnerID() int64 {
	return m.OwnerId
}

func (m VillageBaseMessage) TraceID() string {
	return m.TraceId
}
