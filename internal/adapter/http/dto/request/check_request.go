package request

import "cartonera/internal/domain/entities"

type CheckActionRequest struct {
	EndorsedTo string `json:"endorsed_to"`
	Notes      string `json:"notes"`
}

var checkActions = map[string]entities.CheckStatus{
	"deposit": entities.CheckStatusDeposited,
	"cash":    entities.CheckStatusCashed,
	"endorse": entities.CheckStatusEndorsed,
	"reject":  entities.CheckStatusRejected,
}

// CheckActionStatus maps a route action to the status it moves the check to.
func CheckActionStatus(action string) (entities.CheckStatus, bool) {
	s, ok := checkActions[action]
	return s, ok
}
