package ws

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

var ErrEmptyMsg = errors.New("ws request msg is empty")

// Bind 把 json 解出来的 Msg（map[string]any）按 json tag 解到 dst。
// 数字在 Msg 里是 float64，这里允许转成整型字段。
func Bind(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil || req.Body.Msg == nil {
		return ErrEmptyMsg
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(req.Body.Msg)
}
