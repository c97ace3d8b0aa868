package dto

type SignReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResp struct {
	Uid      int64  `json:"uid,string"`
	Username string `json:"username"`
	Token    string `json:"token"`
	ExpireAt int64  `json:"expireAt"`
}

type Resp struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg,omitempty"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}
