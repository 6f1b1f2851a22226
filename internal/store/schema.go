package store

// Tables are created with plain DDL at open time. Timestamps are unix
// milliseconds; booleans are 0/1 integers.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,
	`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,

	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		level INTEGER NOT NULL DEFAULT 0,
		rounds INTEGER NOT NULL DEFAULT 0,
		questions INTEGER NOT NULL DEFAULT 0,
		correct INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_session_id ON session_events (session_id)`,

	`CREATE TABLE IF NOT EXISTS round_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		level_before INTEGER NOT NULL,
		level_after INTEGER NOT NULL,
		correct INTEGER NOT NULL,
		total INTEGER NOT NULL,
		fallback INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS round_events_session_id ON round_events (session_id)`,

	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		row_factor INTEGER NOT NULL,
		col_factor INTEGER NOT NULL,
		learner_answer TEXT NOT NULL DEFAULT '',
		parsed INTEGER NOT NULL,
		correct INTEGER NOT NULL,
		weight_before REAL NOT NULL,
		weight_after REAL NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_fact ON answer_events (row_factor, col_factor)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT NOT NULL
	)`,
}

// learnerTables are wiped by Reset. LLM request events are kept for
// usage accounting.
var learnerTables = []string{
	"session_events",
	"round_events",
	"answer_events",
	"snapshots",
}
