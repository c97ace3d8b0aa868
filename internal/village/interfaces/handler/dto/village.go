package dto

type CreateVillageReq struct {
	Name      string `json:"name" binding:"required"`
	Archetype string `json:"archetype" binding:"required"`
}

// BuildReq position 用指针区分 0 号位与缺省
type BuildReq struct {
	Position   *int   `json:"position" binding:"required"`
	BuildingID string `json:"buildingId" binding:"required"`
}

type PositionReq struct {
	Position *int `json:"position" mapstructure:"position"`
}

type WsAuthReq struct {
	Token string `json:"token"`
}

type WsAuthResp struct {
	Uid int64 `json:"uid,string"`
}

type WsCreateReq struct {
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
}

type WsBuildReq struct {
	Position   *int   `json:"position"`
	BuildingID string `json:"buildingId"`
}

// ConstructionCompletePush 建造完成推送。
type ConstructionCompletePush struct {
	Positions []int `json:"positions"`
	Village   any   `json:"village"`
}
