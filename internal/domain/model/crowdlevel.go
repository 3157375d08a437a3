package model

// CrowdLevel is the 0-3 crowd classification. 0 means no recent data;
// 1 through 3 come from user submissions and estimates.
type CrowdLevel int

const (
	LevelNoData      CrowdLevel = 0
	LevelNotCrowded  CrowdLevel = 1
	LevelModerate    CrowdLevel = 2
	LevelVeryCrowded CrowdLevel = 3
)

// Valid reports whether the level is one a user may submit.
func (l CrowdLevel) Valid() bool {
	return l >= LevelNotCrowded && l <= LevelVeryCrowded
}

// Label returns the short display status for the level.
func (l CrowdLevel) Label() string {
	switch l {
	case LevelNotCrowded:
		return "Not Crowded"
	case LevelModerate:
		return "Moderately Crowded"
	case LevelVeryCrowded:
		return "Very Crowded"
	case LevelNoData:
		return "No Recent Data"
	default:
		return "Unknown"
	}
}

// Description returns the longer display text for the level.
func (l CrowdLevel) Description() string {
	switch l {
	case LevelNotCrowded:
		return "Comfortable dining experience"
	case LevelModerate:
		return "Some waiting time expected"
	case LevelVeryCrowded:
		return "Long waiting time, consider alternatives"
	case LevelNoData:
		return "Be the first to share crowd status!"
	default:
		return "Status unknown"
	}
}

// Color returns the display color class for the level.
func (l CrowdLevel) Color() string {
	switch l {
	case LevelNotCrowded:
		return "green"
	case LevelModerate:
		return "orange"
	case LevelVeryCrowded:
		return "red"
	default:
		return "gray"
	}
}
