package services

// LevelThreshold maps a level to the minimum XP that reaches it.
type LevelThreshold struct {
	Level int
	XP    int64
}

// LevelThresholds is ascending by XP with level 1 at zero, so any
// non-negative XP always resolves to a level.
var LevelThresholds = []LevelThreshold{
	{1, 0},
	{2, 100},
	{3, 250},
	{4, 500},
	{5, 1000},
	{6, 2000},
	{7, 4000},
	{8, 6000},
	{9, 10000},
	{10, 15000},
}

// GetLevelByXP returns the highest level whose threshold is <= xp,
// clamped to the top defined level.
func GetLevelByXP(xp int64) int {
	level := 1
	for _, t := range LevelThresholds {
		if xp >= t.XP {
			level = t.Level
		} else {
			break
		}
	}
	return level
}
