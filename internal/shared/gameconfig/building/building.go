package building

import (
	"VillageEmpire/internal/shared/config"
	"embed"
	"fmt"
	"sort"
	"sync"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	buildingsFile  = "data/buildings.json"
	archetypesFile = "data/archetypes.json"
)

// Resources 是配置表里的资源数量（成本、每级产量、仓储）。
type Resources struct {
	Wood  int64 `json:"wood" mapstructure:"wood"`
	Stone int64 `json:"stone" mapstructure:"stone"`
	Iron  int64 `json:"iron" mapstructure:"iron"`
	Food  int64 `json:"food" mapstructure:"food"`
}

// Entry 建筑配置（静态，只读）。
type Entry struct {
	ID            string    `json:"id" mapstructure:"id"`
	Name          string    `json:"name" mapstructure:"name"`
	Description   string    `json:"description" mapstructure:"description"`
	MaxLevel      int       `json:"maxLevel" mapstructure:"maxlevel"`
	Cost          Resources `json:"cost" mapstructure:"cost"`             // 每级建造成本
	BuildTime     int64     `json:"buildTime" mapstructure:"buildtime"`   // 秒
	Production    Resources `json:"production" mapstructure:"production"` // 每级每小时产量
	Storage       Resources `json:"storage" mapstructure:"storage"`
	RequiredLevel int       `json:"requiredLevel" mapstructure:"requiredlevel"` // 村庄等级要求
}

// Bonus 按资源的加成比例，0.2 表示 +20%。
type Bonus struct {
	Wood  float64 `json:"wood" mapstructure:"wood"`
	Stone float64 `json:"stone" mapstructure:"stone"`
	Iron  float64 `json:"iron" mapstructure:"iron"`
	Food  float64 `json:"food" mapstructure:"food"`
}

type Archetype struct {
	ID          string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Bonus       Bonus  `json:"bonus" mapstructure:"bonus"`
}

type buildingFile struct {
	Title     string  `mapstructure:"title"`
	Buildings []Entry `mapstructure:"buildings"`
}

type archetypeFile struct {
	Archetypes []Archetype `mapstructure:"archetypes"`
}

// Catalog 建筑与村庄类型配置表。
type Catalog struct {
	buildings  map[string]*Entry
	order      []string
	archetypes map[string]*Archetype
	archOrder  []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default 返回内嵌配置表（只加载一次）。
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	return defaultCatalog, defaultErr
}

// MustDefault 启动阶段使用，配置表损坏直接 panic。
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load 解析内嵌的配置文件并校验。
func Load() (*Catalog, error) {
	var bf buildingFile
	if err := decodeFile(buildingsFile, &bf); err != nil {
		return nil, err
	}
	var af archetypeFile
	if err := decodeFile(archetypesFile, &af); err != nil {
		return nil, err
	}
	return New(bf.Buildings, af.Archetypes)
}

// New 用给定数据构建配置表，测试与工具可直接使用。
func New(entries []Entry, archetypes []Archetype) (*Catalog, error) {
	c := &Catalog{
		buildings:  make(map[string]*Entry, len(entries)),
		archetypes: make(map[string]*Archetype, len(archetypes)),
	}
	for i := range entries {
		e := entries[i]
		if err := validate(e); err != nil {
			return nil, err
		}
		if _, exists := c.buildings[e.ID]; exists {
			return nil, fmt.Errorf("load building config failed: duplicate building id=%q", e.ID)
		}
		c.buildings[e.ID] = &e
		c.order = append(c.order, e.ID)
	}
	for i := range archetypes {
		a := archetypes[i]
		if a.ID == "" {
			return nil, fmt.Errorf("load archetype config failed: empty id at index %d", i)
		}
		if _, exists := c.archetypes[a.ID]; exists {
			return nil, fmt.Errorf("load archetype config failed: duplicate archetype id=%q", a.ID)
		}
		c.archetypes[a.ID] = &a
		c.archOrder = append(c.archOrder, a.ID)
	}
	sort.Strings(c.archOrder)
	return c, nil
}

func validate(e Entry) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("load building config failed: empty id")
	case e.BuildTime <= 0:
		return fmt.Errorf("load building config failed: id=%q buildTime must be positive", e.ID)
	case e.MaxLevel <= 0:
		return fmt.Errorf("load building config failed: id=%q maxLevel must be positive", e.ID)
	case e.Cost.Wood < 0 || e.Cost.Stone < 0 || e.Cost.Iron < 0 || e.Cost.Food < 0:
		return fmt.Errorf("load building config failed: id=%q negative cost", e.ID)
	}
	return nil
}

func decodeFile(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("load building config failed: read %q: %w", name, err)
	}
	if err := config.Decode(raw, "json", out); err != nil {
		return fmt.Errorf("load building config failed: decode %q: %w", name, err)
	}
	return nil
}

// Get 按建筑 id 查找配置。
func (c *Catalog) Get(id string) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.buildings[id]
	return e, ok
}

// All 按配置文件顺序返回全部建筑。
func (c *Catalog) All() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.buildings[id])
	}
	return out
}

func (c *Catalog) Archetype(id string) (*Archetype, bool) {
	if c == nil {
		return nil, false
	}
	a, ok := c.archetypes[id]
	return a, ok
}

// Archetypes 按 id 排序返回。
func (c *Catalog) Archetypes() []Archetype {
	if c == nil {
		return nil
	}
	out := make([]Archetype, 0, len(c.archOrder))
	for _, id := range c.archOrder {
		out = append(out, *c.archetypes[id])
	}
	return out
}
