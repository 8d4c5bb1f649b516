package types

// Client -> Server
// SelectCounty:
//   county: string    // "ROB", "ROCJ", ...
//   category: string  // optional question category filter
//
// SubmitAnswer:
//   answer: string    // exact option text
//
// EndGame: {}

// Server -> Client
// StateSnapshot:
//   version: number
//   state:
//     players: [{ id, name, color, score }]  // join order
//     turn: number                           // attacker index
//     phase: "idle" | "question" | "resolving" | "done"
//     battle: { attacker_id, defender_id, county, question, ticks_left, won } // optional
//     ownership: [{ user_id, counties: string[] }]
//   county_owners: { [code]: { user_id, color } } // derived read-model
//   events: [{ type, player_id, county }]
//
// Error:
//   error: string
