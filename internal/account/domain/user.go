package domain

// User 登录账号，uid 同时是村庄 owner。
type User struct {
	UID          int64
	Username     string
	PasswordHash string
	CreatedAtMs  int64
}

// CheckPassword 用注入的比对函数校验明文密码。
func (u *User) CheckPassword(pwd string, compare func(hash, plain string) bool) bool {
	if u == nil || pwd == "" || u.PasswordHash == "" {
		return false
	}
	return compare(u.PasswordHash, pwd)
}
