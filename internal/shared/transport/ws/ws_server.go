package ws

import (
	"VillageEmpire/modules/kit/logx"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"VillageEmpire/internal/shared/security"
	"VillageEmpire/internal/shared/utils"
)

const (
	outQueueSize = 256
	writeWait    = 5 * time.Second
)

// WsServer 单条 websocket 连接：读协程解包分发，写协程加密回写。
type WsServer struct {
	conn     *websocket.Conn
	router   *Router
	outChan  chan *WsMsgResp
	property map[string]any
	sync.RWMutex
	// gorilla 的连接只允许一个并发写者，握手与写协程共用
	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, l logx.Logger) *WsServer {
	return &WsServer{
		conn:     wsConn,
		outChan:  make(chan *WsMsgResp, outQueueSize),
		property: make(map[string]any),
		done:     make(chan struct{}),
		log:      l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 服务端主动推送，队列满时丢弃，调用方不会被慢连接阻塞。
func (s *WsServer) Push(name string, data any) {
	s.enqueue(&WsMsgResp{Body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) enqueue(msg *WsMsgResp) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.outChan <- msg:
	default:
		s.log.Warn("ws_server out queue full, drop msg", zap.String("name", msg.Body.Name), zap.String("addr", s.Addr()))
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.Info("ws_server read closed", zap.Error(err))
			return
		}

		// 前端发送的是压缩加密过的json
		secretData, err := security.UnZip(data)
		if err != nil {
			s.log.Error("ws_server readMsgLoop unzip", zap.Error(err))
			continue
		}

		secretKey, _ := s.GetProperty(SecretKey).(string)
		if secretKey == "" {
			s.log.Error("ws_server readMsgLoop not found secretKey")
			continue
		}

		decryptedData, err := security.AesCBCDecrypt(secretData, []byte(secretKey), []byte(secretKey), openssl.ZEROS_PADDING)
		if err != nil {
			s.log.Error("ws_server readMsgLoop decrypt error", zap.Error(err))
			// 出错后，重新握手
			s.handshake()
			continue
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(decryptedData, &reqBody); err != nil {
			s.log.Error("ws_server readMsgLoop unmarshal json error", zap.Error(err))
			continue
		}

		// req 和 resp 的 Seq 必须一致
		req := WsMsgReq{Body: &reqBody, Conn: s}
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else if s.router != nil {
			s.router.Dispatch(&req, &resp)
		}

		s.enqueue(&resp)
	}
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg := <-s.outChan:
			if msg.Body.Name != HeartbeatMsg {
				s.log.Debug("ws_server write msg", zap.String("name", msg.Body.Name), zap.Int64("seq", msg.Body.Seq))
			}
			s.write(msg)
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	marshal, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server write marshal json error", zap.Error(err))
		return
	}

	secretKey, _ := s.GetProperty(SecretKey).(string)
	if secretKey == "" {
		s.log.Error("ws_server write not found secretKey", zap.String("name", msg.Body.Name))
		return
	}

	encryptedData, err := security.AesCBCEncrypt(marshal, []byte(secretKey), []byte(secretKey), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server write encrypt error", zap.Error(err))
		return
	}

	zipData, err := security.Zip(encryptedData)
	if err != nil {
		s.log.Error("ws_server write zip error", zap.Error(err))
		return
	}
	s.writeBinary(zipData)
}

// 压缩后的密文是二进制字节流，必须走 BinaryMessage
func (s *WsServer) writeBinary(data []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		s.log.Error("ws_server write error", zap.Error(err))
		s.Close()
	}
}

// handshake 下发对称密钥，握手包只压缩不加密。
func (s *WsServer) handshake() {
	secretKey, _ := s.GetProperty(SecretKey).(string)
	if secretKey == "" {
		secretKey = utils.RandSeq(16)
		s.SetProperty(SecretKey, secretKey)
	}

	body := &RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: secretKey}}
	data, err := json.Marshal(body)
	if err != nil {
		s.log.Error("ws_server handshake marshal json error", zap.Error(err))
		return
	}

	zipData, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server handshake zip error", zap.Error(err))
		return
	}
	s.writeBinary(zipData)
}
