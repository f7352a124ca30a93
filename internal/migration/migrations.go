package migration

// getAllMigrations returns every known migration
func getAllMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_reference_tables",
			Up: `
				-- Cities served by the system
				CREATE TABLE locations (
					id VARCHAR(50) PRIMARY KEY,
					city VARCHAR(120) NOT NULL,
					state VARCHAR(120) NOT NULL
				);

				-- Government offices per location
				CREATE TABLE offices (
					id VARCHAR(50) PRIMARY KEY,
					location_id VARCHAR(50) REFERENCES locations(id) ON DELETE CASCADE,
					name VARCHAR(255) NOT NULL
				);

				-- Historical average waits per office, day-of-week (Monday=0)
				-- and hourly slot label
				CREATE TABLE baseline_wait_times (
					office_id VARCHAR(50) REFERENCES offices(id) ON DELETE CASCADE,
					day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
					time_slot VARCHAR(11) NOT NULL,
					avg_wait_minutes INTEGER NOT NULL CHECK (avg_wait_minutes >= 0),
					PRIMARY KEY (office_id, day_of_week, time_slot)
				);

				CREATE INDEX idx_baselines_office_slot
					ON baseline_wait_times (office_id, time_slot);
			`,
			Down: `
				DROP TABLE IF EXISTS baseline_wait_times;
				DROP TABLE IF EXISTS offices;
				DROP TABLE IF EXISTS locations;
			`,
		},
		{
			Version: 2,
			Name:    "create_live_signals",
			Up: `
				-- Append-only anonymous check-in events; rows are never
				-- updated or deleted, they just age out of the 45-minute
				-- estimation window
				CREATE TABLE live_signals (
					id BIGSERIAL PRIMARY KEY,
					office_id VARCHAR(50) NOT NULL REFERENCES offices(id) ON DELETE CASCADE,
					signal_type VARCHAR(10) NOT NULL CHECK (signal_type IN ('entered', 'completed')),
					user_id VARCHAR(50) NOT NULL,
					recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE INDEX idx_live_signals_office_time
					ON live_signals (office_id, recorded_at);
			`,
			Down: `
				DROP TABLE IF EXISTS live_signals;
			`,
		},
	}
}
