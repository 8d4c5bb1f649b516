package engine

import "slices"

// OwnershipRecord is one player's slice of the map. The json tags match
// the map_state document shape persisted per room.
type OwnershipRecord struct {
	PlayerID string   `json:"user_id"`
	Counties []string `json:"counties"`
}

// OwnershipPayload is the canonical per-room ownership state: an ordered
// sequence of (player, counties) records. Invariant: a county code appears
// in at most one record.
type OwnershipPayload []OwnershipRecord

func (p OwnershipPayload) Clone() OwnershipPayload {
	out := make(OwnershipPayload, len(p))
	for i, rec := range p {
		out[i] = OwnershipRecord{
			PlayerID: rec.PlayerID,
			Counties: slices.Clone(rec.Counties),
		}
	}
	return out
}

// Owner reports which player owns the given county, if any.
func (p OwnershipPayload) Owner(code string) (string, bool) {
	owner := ""
	found := false
	for _, rec := range p {
		if slices.Contains(rec.Counties, code) {
			// Last record wins on (invalid) duplicates so derivation
			// stays deterministic even over a corrupt payload.
			owner = rec.PlayerID
			found = true
		}
	}
	return owner, found
}

// CountiesOf returns the counties listed under playerID.
func (p OwnershipPayload) CountiesOf(playerID string) []string {
	for _, rec := range p {
		if rec.PlayerID == playerID {
			return rec.Counties
		}
	}
	return nil
}

// Capture reassigns code to playerID and returns the new payload.
// The code is removed from every other record, the attacker's record is
// created if missing, and appending is idempotent: capturing a county the
// attacker already holds yields an identical payload.
func (p OwnershipPayload) Capture(playerID, code string) OwnershipPayload {
	out := make(OwnershipPayload, 0, len(p)+1)
	captured := false
	for _, rec := range p {
		counties := slices.Clone(rec.Counties)
		if rec.PlayerID == playerID {
			if !slices.Contains(counties, code) {
				counties = append(counties, code)
			}
			captured = true
		} else {
			if i := slices.Index(counties, code); i >= 0 {
				counties = slices.Delete(counties, i, i+1)
			}
		}
		out = append(out, OwnershipRecord{PlayerID: rec.PlayerID, Counties: counties})
	}
	if !captured {
		out = append(out, OwnershipRecord{PlayerID: playerID, Counties: []string{code}})
	}
	return out
}

// CountyCount returns how many counties playerID holds.
func (p OwnershipPayload) CountyCount(playerID string) int {
	return len(p.CountiesOf(playerID))
}
