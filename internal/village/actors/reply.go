package actors

import (
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/engine"
)

// Reply 村庄 actor 的统一应答。Err 非空时其余字段无意义。
type Reply struct {
	View  *app.VillageView
	Stats *engine.Stats
	Err   error
}

func ok(view app.VillageView) *Reply {
	return &Reply{View: &view}
}

func fail(err error) *Reply {
	return &Reply{Err: err}
}
