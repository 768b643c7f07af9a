package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
	id                     TEXT PRIMARY KEY,
	owner_id               TEXT NOT NULL,
	name                   TEXT NOT NULL,
	color_tag              TEXT NOT NULL DEFAULT '',
	target_minutes_per_day INTEGER,
	active                 INTEGER NOT NULL DEFAULT 1 CHECK(active IN (0, 1)),
	created_at             DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at             DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	id               TEXT PRIMARY KEY,
	owner_id         TEXT NOT NULL,
	title            TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'open' CHECK(status IN ('open', 'complete')),
	completed_at     DATETIME,
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	mindful_rating   INTEGER CHECK(mindful_rating BETWEEN 1 AND 5),
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS task_goals (
	task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	goal_id TEXT NOT NULL,
	PRIMARY KEY (task_id, goal_id)
);

CREATE INDEX IF NOT EXISTS idx_goals_owner_active ON goals(owner_id, active);
CREATE INDEX IF NOT EXISTS idx_tasks_owner_completed ON tasks(owner_id, completed_at);
CREATE INDEX IF NOT EXISTS idx_task_goals_goal_id ON task_goals(goal_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS time_blocks (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	date       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(owner_id, date)
);

CREATE TABLE IF NOT EXISTS time_block_entries (
	id               TEXT PRIMARY KEY,
	block_id         TEXT NOT NULL REFERENCES time_blocks(id) ON DELETE CASCADE,
	date             TEXT NOT NULL,
	start_time       DATETIME NOT NULL,
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	goal_id          TEXT NOT NULL DEFAULT '',
	task_id          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS habits (
	id                       TEXT PRIMARY KEY,
	owner_id                 TEXT NOT NULL,
	name                     TEXT NOT NULL,
	goal_id                  TEXT NOT NULL DEFAULT '',
	default_duration_minutes INTEGER NOT NULL DEFAULT 0,
	active                   INTEGER NOT NULL DEFAULT 1 CHECK(active IN (0, 1)),
	created_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS habit_checkins (
	id               TEXT PRIMARY KEY,
	habit_id         TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	goal_id          TEXT NOT NULL DEFAULT '',
	date             DATETIME NOT NULL,
	completed        INTEGER NOT NULL DEFAULT 1 CHECK(completed IN (0, 1)),
	duration_minutes INTEGER
);

CREATE INDEX IF NOT EXISTS idx_time_block_entries_block_id ON time_block_entries(block_id);
CREATE INDEX IF NOT EXISTS idx_time_block_entries_start ON time_block_entries(start_time);
CREATE INDEX IF NOT EXISTS idx_habits_owner_active ON habits(owner_id, active);
CREATE INDEX IF NOT EXISTS idx_habit_checkins_habit_id ON habit_checkins(habit_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
CREATE TABLE IF NOT EXISTS goal_aligned_days (
	id                       TEXT PRIMARY KEY,
	user_id                  TEXT NOT NULL,
	date                     TEXT NOT NULL,
	tasks_goal_aligned_count INTEGER NOT NULL DEFAULT 0,
	block_minutes            INTEGER NOT NULL DEFAULT 0,
	habit_minutes            INTEGER NOT NULL DEFAULT 0,
	task_minutes             INTEGER NOT NULL DEFAULT 0,
	total_aligned_minutes    INTEGER NOT NULL DEFAULT 0 CHECK(total_aligned_minutes BETWEEN 0 AND 1440),
	score24                  REAL NOT NULL DEFAULT 0 CHECK(score24 BETWEEN 0 AND 24),
	score_percentage         REAL NOT NULL DEFAULT 0 CHECK(score_percentage BETWEEN 0 AND 100),
	goal_breakdown           TEXT NOT NULL DEFAULT '[]',
	mindful_task_count       INTEGER NOT NULL DEFAULT 0,
	mindful_minutes          INTEGER NOT NULL DEFAULT 0,
	average_mindful_rating   REAL NOT NULL DEFAULT 0,
	current_streak           INTEGER NOT NULL DEFAULT 0,
	longest_streak           INTEGER NOT NULL DEFAULT 0,
	target_minutes_per_day   INTEGER NOT NULL DEFAULT 480,
	base_current_streak      INTEGER NOT NULL DEFAULT 0,
	base_longest_streak      INTEGER NOT NULL DEFAULT 0,
	version                  INTEGER NOT NULL DEFAULT 1,
	created_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_goal_aligned_days_user_date ON goal_aligned_days(user_id, date);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
