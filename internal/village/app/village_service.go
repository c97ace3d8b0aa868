package app

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/engine"

	"go.uber.org/zap"
)

// InitialResources 新村庄的起始资源。
var InitialResources = domain.Resources{Wood: 200, Stone: 150, Iron: 150, Food: 200}

const maxNameLen = 32

type VillageService struct {
	repo    VillageRepository
	catalog Catalog
	clock   Clock
	idGen   IDGen
	log     Logger

	initialSpeedUps int
}

func NewVillageService(repo VillageRepository, catalog Catalog, clock Clock, idGen IDGen, log Logger, initialSpeedUps int) *VillageService {
	return &VillageService{
		repo:            repo,
		catalog:         catalog,
		clock:           clock,
		idGen:           idGen,
		log:             log.With(zap.String("component", "village")),
		initialSpeedUps: max(initialSpeedUps, 0),
	}
}

func (s *VillageService) Catalog() Catalog {
	return s.catalog
}

func (s *VillageService) Now() int64 {
	return s.clock()
}

// CreateVillage 为 owner 建村；已有村庄时直接返回已有的。
func (s *VillageService) CreateVillage(ctx context.Context, owner domain.OwnerID, name, archetype string) (*domain.Village, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return nil, reject(ReasonInvalidName)
	}
	if _, ok := s.catalog.Archetype(archetype); !ok {
		return nil, reject(ReasonUnknownArchetype)
	}

	existing, err := s.repo.FindByOwner(ctx, owner)
	switch {
	case err == nil:
		return existing, nil
	case errors.Is(err, domain.ErrVillageNotFound):
	default:
		return nil, ErrPersistence.WithReason(ReasonRepoReadFail).WithCause(err)
	}

	id := s.idGen()
	if id <= 0 {
		return nil, ErrPersistence.WithReason(ReasonIDIssue).WithData("owner", int64(owner))
	}
	now := s.clock()
	v := &domain.Village{
		ID:                   domain.VillageID(id),
		OwnerID:              owner,
		Name:                 name,
		Archetype:            archetype,
		Level:                1,
		Resources:            InitialResources,
		Buildings:            map[domain.Position]domain.BuildingInstance{},
		LastResourceUpdateMs: now,
		SpeedUpPoints:        s.initialSpeedUps,
		CreatedAtMs:          now,
		Version:              1,
	}
	if err = s.repo.Create(ctx, v); err != nil {
		if errors.Is(err, domain.ErrVillageExists) {
			// 并发建村，以先写入的为准
			return s.Load(ctx, owner)
		}
		return nil, ErrPersistence.WithReason(ReasonRepoWriteFail).WithCause(err)
	}
	s.log.WithContext(ctx).Info("村庄创建",
		zap.Int64("owner", int64(owner)),
		zap.Int64("village", id),
		zap.String("archetype", archetype),
	)
	return v, nil
}

// Load 读取存档，不做结算。
func (s *VillageService) Load(ctx context.Context, owner domain.OwnerID) (*domain.Village, error) {
	v, err := s.repo.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrVillageNotFound) {
			return nil, ErrNotFound.WithData("owner", int64(owner))
		}
		return nil, ErrPersistence.WithReason(ReasonRepoReadFail).WithCause(err)
	}
	return v, nil
}

// Refresh 把村庄推进到当前时间：到期建筑转为 Active，资源入账。
// 没有变化时不写库，返回 cur 本身。
func (s *VillageService) Refresh(ctx context.Context, cur *domain.Village) (*domain.Village, engine.Outcome, error) {
	if cur == nil {
		return nil, engine.Outcome{}, ErrNotFound
	}
	next := cur.Clone()
	out := engine.Advance(next, s.clock(), s.catalog)
	if !out.Changed() {
		return cur, out, nil
	}
	if err := s.save(ctx, cur, next); err != nil {
		return cur, engine.Outcome{}, err
	}
	return next, out, nil
}

// Build 在空位上开始建造一栋 1 级建筑。
func (s *VillageService) Build(ctx context.Context, cur *domain.Village, pos domain.Position, buildingID string) (*domain.Village, error) {
	return s.commit(ctx, cur, func(next *domain.Village, now int64) error {
		e, ok := s.catalog.Get(buildingID)
		if !ok {
			return reject(ReasonUnknownBuilding).WithData("buildingId", buildingID)
		}
		if !pos.Valid() {
			return reject(ReasonInvalidPosition).WithData("position", int(pos))
		}
		if _, occupied := next.Building(pos); occupied {
			return reject(ReasonPositionOccupied).WithData("position", int(pos))
		}
		if next.Level < e.RequiredLevel {
			return reject(ReasonInsufficientLevel).WithData("required", e.RequiredLevel)
		}
		left, ok := next.Resources.Sub(domain.ResourcesFrom(e.Cost))
		if !ok {
			return reject(ReasonInsufficientResources)
		}
		next.Resources = left
		next.PutBuilding(pos, engine.StartConstruction(e, now))
		return nil
	})
}

// Complete 显式完成建造；到期的建筑在结算时已经转为 Active。
func (s *VillageService) Complete(ctx context.Context, cur *domain.Village, pos domain.Position) (*domain.Village, error) {
	if cur != nil {
		if b, ok := cur.Building(pos); ok && b.IsActive() {
			return nil, reject(ReasonNotUnderConstruction).WithData("position", int(pos))
		}
	}
	return s.commit(ctx, cur, func(next *domain.Village, now int64) error {
		b, err := s.occupied(next, pos)
		if err != nil {
			return err
		}
		if !b.IsActive() {
			uc, _ := b.Construction()
			return reject(ReasonConstructionRunning).WithData("remainingMs", uc.EndMs-now)
		}
		return nil
	})
}

// SpeedUpWithResources 花资源把结束时间提前 5 分钟，但至少还剩 10 秒。
func (s *VillageService) SpeedUpWithResources(ctx context.Context, cur *domain.Village, pos domain.Position) (*domain.Village, error) {
	return s.commit(ctx, cur, func(next *domain.Village, now int64) error {
		b, uc, err := s.underConstruction(next, pos)
		if err != nil {
			return err
		}
		if !engine.CanSpeedUpWithResources(now, uc.EndMs) {
			return reject(ReasonSpeedUpTooLate).WithData("remaining_ms", uc.EndMs-now)
		}
		left, ok := next.Resources.Sub(engine.SpeedUpCost(b.SpeedUpCount))
		if !ok {
			return reject(ReasonInsufficientResources)
		}
		next.Resources = left
		b = b.WithEnd(engine.ResourceSpeedUpEnd(now, uc.EndMs))
		b.SpeedUpCount++
		next.PutBuilding(pos, b)
		return nil
	})
}

// SpeedUpWithPoint 消耗 1 个加速点，立即完成。
func (s *VillageService) SpeedUpWithPoint(ctx context.Context, cur *domain.Village, pos domain.Position) (*domain.Village, error) {
	return s.commit(ctx, cur, func(next *domain.Village, now int64) error {
		b, _, err := s.underConstruction(next, pos)
		if err != nil {
			return err
		}
		if next.SpeedUpPoints < 1 {
			return reject(ReasonInsufficientPoints)
		}
		next.SpeedUpPoints--
		b = b.WithEnd(now).Activate()
		b.SpeedUpCount++
		next.PutBuilding(pos, b)
		return nil
	})
}

// Destroy 拆除建筑，不返还资源。
func (s *VillageService) Destroy(ctx context.Context, cur *domain.Village, pos domain.Position) (*domain.Village, error) {
	return s.commit(ctx, cur, func(next *domain.Village, now int64) error {
		if _, err := s.occupied(next, pos); err != nil {
			return err
		}
		next.RemoveBuilding(pos)
		return nil
	})
}

// Upgrade 暂未开放。
func (s *VillageService) Upgrade(ctx context.Context, cur *domain.Village, pos domain.Position) (*domain.Village, error) {
	if cur == nil {
		return nil, ErrNotFound
	}
	if _, err := s.occupied(cur, pos); err != nil {
		return nil, err
	}
	return nil, reject(ReasonUpgradeNotAvailable)
}

func (s *VillageService) Rates(v *domain.Village) domain.Rates {
	return engine.Rates(v, s.catalog)
}

func (s *VillageService) ProductionStats(v *domain.Village) engine.Stats {
	return engine.ProductionStats(v, s.catalog)
}

// commit 在副本上结算并执行 mutate，写库成功后返回新快照；任何失败 cur 都保持原样。
func (s *VillageService) commit(ctx context.Context, cur *domain.Village, mutate func(next *domain.Village, now int64) error) (*domain.Village, error) {
	if cur == nil {
		return nil, ErrNotFound
	}
	now := s.clock()
	next := cur.Clone()
	engine.Advance(next, now, s.catalog)
	if err := mutate(next, now); err != nil {
		return nil, err
	}
	if !next.Resources.NonNegative() {
		return nil, reject(ReasonInsufficientResources)
	}
	if err := s.save(ctx, cur, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *VillageService) save(ctx context.Context, cur, next *domain.Village) error {
	next.Version = cur.Version + 1
	err := s.repo.Save(ctx, next, cur.Version)
	if err == nil {
		return nil
	}
	reason := ReasonRepoWriteFail
	if errors.Is(err, domain.ErrVersionConflict) {
		reason = ReasonVersionConflict
		// 同一村庄只应有一个写者，冲突说明存在多实例或外部改档
		s.log.WithContext(ctx).Warn("村庄存档版本冲突",
			zap.Int64("village", int64(cur.ID)),
			zap.Int64("expected_version", cur.Version))
	}
	return ErrPersistence.WithReason(reason).WithData("village", int64(cur.ID)).WithCause(err)
}

func (s *VillageService) occupied(v *domain.Village, pos domain.Position) (domain.BuildingInstance, error) {
	if !pos.Valid() {
		return domain.BuildingInstance{}, reject(ReasonInvalidPosition).WithData("position", int(pos))
	}
	b, ok := v.Building(pos)
	if !ok {
		return domain.BuildingInstance{}, reject(ReasonPositionEmpty).WithData("position", int(pos))
	}
	return b, nil
}

func (s *VillageService) underConstruction(v *domain.Village, pos domain.Position) (domain.BuildingInstance, domain.UnderConstruction, error) {
	b, err := s.occupied(v, pos)
	if err != nil {
		return b, domain.UnderConstruction{}, err
	}
	uc, ok := b.Construction()
	if !ok {
		return b, uc, reject(ReasonNotUnderConstruction).WithData("position", int(pos))
	}
	return b, uc, nil
}
