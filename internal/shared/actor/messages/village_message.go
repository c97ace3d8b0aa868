package messages

// HV* : handler -> village actor

type HVCreateVillage struct {
	VillageBaseMessage
	Name      string
	Archetype string
}

type HVLoadVillage struct {
	VillageBaseMessage
}

type HVBuild struct {
	VillageBaseMessage
	Position   int
	BuildingID string
}

type HVComplete struct {
	VillageBaseMessage
	Position int
}

type HVSpeedUpResources struct {
	VillageBaseMessage
	Position int
}

type HVSpeedUpPoint struct {
	VillageBaseMessage
	Position int
}

type HVDestroy struct {
	VillageBaseMessage
	Position int
}

type HVUpgrade struct {
	VillageBaseMessage
	Position int
}

type HVStats struct {
	VillageBaseMessage
}
