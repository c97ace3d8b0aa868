package ws

// ReqBody 客户端上行包，Name 形如 "village.build"。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// RespBody 下行包；应答的 Seq 与请求一致，服务端推送 Seq 为 0。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 一条已握手的连接，handler 通过它读写连接属性和推送。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	// Push 不阻塞，连接写队列满时丢弃
	Push(name string, data any)
	Close()
	// Done 连接关闭后被 close
	Done() <-chan struct{}
}

type Handshake struct {
	Key string `json:"key"`
}

// Heartbeat 客户端带 ctime，服务端回填 stime，单位毫秒。
type Heartbeat struct {
	CTime int64 `json:"ctime" mapstructure:"ctime"`
	STime int64 `json:"stime" mapstructure:"stime"`
}

const (
	HandshakeMsg = "handshake"
	HeartbeatMsg = "heartbeat"
)

// 连接属性 key
const (
	SecretKey  = "secretKey"
	ConnKeyUID = "uid"
)
