package middleware

import (
	"VillageEmpire/internal/shared/transport"
	"net/http"
	"testing"
)

func TestBizCodeOf_状态码换算业务码(t *testing.T) {
	cases := map[int]transport.BizCode{
		http.StatusOK:                  transport.OK,
		http.StatusNoContent:           transport.OK,
		http.StatusBadRequest:          transport.InvalidParam,
		http.StatusUnprocessableEntity: transport.Rejected,
		http.StatusServiceUnavailable:  transport.Unavailable,
	}
	for status, want := range cases {
		if got := bizCodeOf(status); got != want {
			t.Fatalf("status=%d got=%d want=%d", status, got, want)
		}
	}
}
