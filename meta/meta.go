// meta/meta.go
package meta

import "time"

// FIELD_SIZE is the default width and height of the board.
const FIELD_SIZE = 20

// BASE_DISTANCE is the default distance of a base from the board edges.
const BASE_DISTANCE = 2

// TURN_LENGTH is the default number of moves per turn.
const TURN_LENGTH = 10

// DEMO_DELAY is the pause between the moves of computer players in demo games.
const DEMO_DELAY = 300 * time.Millisecond

// MAX_TURNS caps a game run by the engine.
const MAX_TURNS = 1000

// EXPERIMENT_GAMES is the default number of games in an experiment batch.
const EXPERIMENT_GAMES = 10
