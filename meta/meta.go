// meta/meta.go
package meta

// DEPTH is the default mid-game search depth.
const DEPTH = 3

// FINAL_DEPTH is the default number of empty cells at which a search agent
// starts solving the game to the end.
const FINAL_DEPTH = 8

// RANDOM_FINAL_DEPTH is the endgame threshold of random players.
const RANDOM_FINAL_DEPTH = 6

// CACHE_SIZE is the default capacity of position and feature caches.
const CACHE_SIZE = 1 << 16

// ZOBRIST_SEED fixes the hash table so runs are reproducible.
const ZOBRIST_SEED = 20240229

// GAMES is the default number of games per run or matchup.
const GAMES = 100

// STAT_INTERVAL is how often, in games, the running tally is logged.
const STAT_INTERVAL = 100
