package engine

// NewState builds the post-assignment state for a room: players in join
// order, turn pointer at index 0, no battle.
func NewState(players []Player, ownership OwnershipPayload) State {
	ps := make([]Player, len(players))
	copy(ps, players)
	return State{
		Players:       ps,
		Turn:          0,
		Phase:         PhaseIdle,
		Ownership:     ownership.Clone(),
		QuestionTicks: DefaultQuestionTicks,
	}
}

// AssignCounties deals every county to the given players round-robin,
// producing the initial disjoint ownership payload.
func AssignCounties(playerIDs []string) OwnershipPayload {
	payload := make(OwnershipPayload, len(playerIDs))
	for i, id := range playerIDs {
		payload[i] = OwnershipRecord{PlayerID: id, Counties: []string{}}
	}
	if len(playerIDs) == 0 {
		return payload
	}
	for i, code := range CountyCodes() {
		rec := &payload[i%len(playerIDs)]
		rec.Counties = append(rec.Counties, code)
	}
	return payload
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
