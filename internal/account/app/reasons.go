package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	ReasonInvalidCredentials = NewReason("INVALID_CREDENTIALS", "用户名或密码错误")
	ReasonUserExists         = NewReason("USER_EXISTS", "用户名已被占用")
	ReasonInvalidUsername    = NewReason("INVALID_USERNAME", "用户名需为 4~20 位字母、数字或下划线")
	ReasonWeakPassword       = NewReason("WEAK_PASSWORD", "密码长度需为 8~64 位")
)

var (
	ReasonUserRepoUnavailable = NewReason("USER_REPO_UNAVAILABLE", "用户存储不可用")
	ReasonUserCreateFail      = NewReason("USER_CREATE_FAIL", "用户创建失败")
	ReasonPasswordHashFail    = NewReason("PASSWORD_HASH_FAIL", "密码加密失败")
	ReasonTokenIssue          = NewReason("TOKEN_ISSUE", "令牌签发失败")
	ReasonIDIssue             = NewReason("USER_ID_ISSUE", "用户 id 生成失败")
)
