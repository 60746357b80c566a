package constants

// Only these edges are legal. posted -> assigned is reserved for accepting an
// application and posted -> expired for the expiry sweep.
var gigTransitions = map[GigStatus][]GigStatus{
	GigStatusDraft:      {GigStatusPosted},
	GigStatusPosted:     {GigStatusAssigned, GigStatusCancelled, GigStatusExpired},
	GigStatusAssigned:   {GigStatusInProgress, GigStatusCompleted, GigStatusCancelled},
	GigStatusInProgress: {GigStatusCompleted, GigStatusCancelled},
}

func CanTransition(from, to GigStatus) bool {
	for _, next := range gigTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
