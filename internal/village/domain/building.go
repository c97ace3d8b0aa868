package domain

// Position 九宫格位置 0..8。
type Position int

const GridSize = 9

func (p Position) Valid() bool {
	return p >= 0 && p < GridSize
}

// ConstructionState 建筑状态：UnderConstruction 或 Active，二者必居其一。
type ConstructionState interface {
	isConstructionState()
}

// UnderConstruction 建造窗口，毫秒时间戳。
type UnderConstruction struct {
	StartMs int64
	EndMs   int64
}

func (UnderConstruction) isConstructionState() {}

// Active 建成，参与产出。
type Active struct{}

func (Active) isConstructionState() {}

// BuildingInstance 村庄格子上的一栋建筑。
type BuildingInstance struct {
	BuildingID   string
	Level        int
	SpeedUpCount int
	State        ConstructionState
}

// NewConstruction 新建一栋 1 级建筑，处于建造中。
func NewConstruction(buildingID string, startMs, endMs int64) BuildingInstance {
	return BuildingInstance{
		BuildingID: buildingID,
		Level:      1,
		State:      UnderConstruction{StartMs: startMs, EndMs: endMs},
	}
}

// Construction 返回建造窗口；Active 时 ok=false。
func (b BuildingInstance) Construction() (UnderConstruction, bool) {
	uc, ok := b.State.(UnderConstruction)
	return uc, ok
}

// IsActive 未设置状态的实例按 Active 处理。
func (b BuildingInstance) IsActive() bool {
	_, building := b.Construction()
	return !building
}

// Activate 清除建造窗口。
func (b BuildingInstance) Activate() BuildingInstance {
	b.State = Active{}
	return b
}

// WithEnd 调整建造结束时间；非建造中原样返回。
func (b BuildingInstance) WithEnd(endMs int64) BuildingInstance {
	uc, ok := b.Construction()
	if !ok {
		return b
	}
	uc.EndMs = endMs
	b.State = uc
	return b
}
