package store

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS journalists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	slug TEXT NOT NULL UNIQUE,
	publications TEXT NOT NULL DEFAULT '[]',
	twitter_handle TEXT NOT NULL DEFAULT '',
	truthfulness_score TEXT NOT NULL DEFAULT '0',
	speed_score TEXT NOT NULL DEFAULT '0',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS claims (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	journalist_id INTEGER NOT NULL REFERENCES journalists(id),
	cited_journalist_id INTEGER REFERENCES journalists(id),
	claim_text TEXT NOT NULL,
	publication TEXT NOT NULL DEFAULT '',
	article_url TEXT NOT NULL DEFAULT '',
	claim_date DATETIME NOT NULL,
	player_name TEXT NOT NULL DEFAULT '',
	from_club TEXT NOT NULL DEFAULT '',
	to_club TEXT NOT NULL DEFAULT '',
	transfer_fee TEXT NOT NULL DEFAULT '',
	certainty_level TEXT NOT NULL DEFAULT 'tier_6_speculation',
	is_transfer_negative INTEGER NOT NULL DEFAULT 0,
	source_type TEXT NOT NULL DEFAULT 'original',
	validation_status TEXT NOT NULL DEFAULT 'pending',
	validation_date DATETIME,
	validation_notes TEXT NOT NULL DEFAULT '',
	validation_source_url TEXT NOT NULL DEFAULT '',
	is_first_claim INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_claims_journalist ON claims(journalist_id);
CREATE INDEX IF NOT EXISTS idx_claims_status_date ON claims(validation_status, claim_date);
CREATE INDEX IF NOT EXISTS idx_claims_player ON claims(player_name);

CREATE TABLE IF NOT EXISTS score_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	journalist_id INTEGER NOT NULL REFERENCES journalists(id),
	truthfulness_score TEXT NOT NULL,
	speed_score TEXT NOT NULL,
	total_claims INTEGER NOT NULL DEFAULT 0,
	validated_claims INTEGER NOT NULL DEFAULT 0,
	true_claims INTEGER NOT NULL DEFAULT 0,
	false_claims INTEGER NOT NULL DEFAULT 0,
	original_scoops INTEGER NOT NULL DEFAULT 0,
	recorded_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_history_journalist ON score_history(journalist_id, recorded_at);

CREATE TABLE IF NOT EXISTS reference_clubs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	external_id TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL UNIQUE,
	country TEXT NOT NULL DEFAULT '',
	competition TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS reference_players (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	external_id TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	current_club_name TEXT NOT NULL DEFAULT '',
	on_loan_from_club_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	date_of_birth DATE,
	citizenship TEXT NOT NULL DEFAULT '',
	contract_expires DATE,
	is_manager INTEGER NOT NULL DEFAULT 0,
	UNIQUE (name, current_club_name)
);

CREATE TABLE IF NOT EXISTS scraped_articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL UNIQUE,
	source_type TEXT NOT NULL,
	source_name TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	raw_content TEXT NOT NULL DEFAULT '',
	processed INTEGER NOT NULL DEFAULT 0,
	claims_created INTEGER NOT NULL DEFAULT 0,
	processing_error TEXT NOT NULL DEFAULT '',
	scraped_at DATETIME NOT NULL
)
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS journalists (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	slug TEXT NOT NULL UNIQUE,
	publications TEXT NOT NULL DEFAULT '[]',
	twitter_handle TEXT NOT NULL DEFAULT '',
	truthfulness_score NUMERIC(10,0) NOT NULL DEFAULT 0,
	speed_score NUMERIC(5,2) NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS claims (
	id BIGSERIAL PRIMARY KEY,
	journalist_id BIGINT NOT NULL REFERENCES journalists(id),
	cited_journalist_id BIGINT REFERENCES journalists(id),
	claim_text TEXT NOT NULL,
	publication TEXT NOT NULL DEFAULT '',
	article_url TEXT NOT NULL DEFAULT '',
	claim_date TIMESTAMPTZ NOT NULL,
	player_name TEXT NOT NULL DEFAULT '',
	from_club TEXT NOT NULL DEFAULT '',
	to_club TEXT NOT NULL DEFAULT '',
	transfer_fee TEXT NOT NULL DEFAULT '',
	certainty_level TEXT NOT NULL DEFAULT 'tier_6_speculation',
	is_transfer_negative BOOLEAN NOT NULL DEFAULT FALSE,
	source_type TEXT NOT NULL DEFAULT 'original',
	validation_status TEXT NOT NULL DEFAULT 'pending',
	validation_date TIMESTAMPTZ,
	validation_notes TEXT NOT NULL DEFAULT '',
	validation_source_url TEXT NOT NULL DEFAULT '',
	is_first_claim BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_claims_journalist ON claims(journalist_id);
CREATE INDEX IF NOT EXISTS idx_claims_status_date ON claims(validation_status, claim_date);
CREATE INDEX IF NOT EXISTS idx_claims_player ON claims(player_name);

CREATE TABLE IF NOT EXISTS score_history (
	id BIGSERIAL PRIMARY KEY,
	journalist_id BIGINT NOT NULL REFERENCES journalists(id),
	truthfulness_score NUMERIC(10,0) NOT NULL,
	speed_score NUMERIC(5,2) NOT NULL,
	total_claims INTEGER NOT NULL DEFAULT 0,
	validated_claims INTEGER NOT NULL DEFAULT 0,
	true_claims INTEGER NOT NULL DEFAULT 0,
	false_claims INTEGER NOT NULL DEFAULT 0,
	original_scoops INTEGER NOT NULL DEFAULT 0,
	recorded_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_history_journalist ON score_history(journalist_id, recorded_at);

CREATE TABLE IF NOT EXISTS reference_clubs (
	id BIGSERIAL PRIMARY KEY,
	external_id TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL UNIQUE,
	country TEXT NOT NULL DEFAULT '',
	competition TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS reference_players (
	id BIGSERIAL PRIMARY KEY,
	external_id TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	current_club_name TEXT NOT NULL DEFAULT '',
	on_loan_from_club_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	date_of_birth DATE,
	citizenship TEXT NOT NULL DEFAULT '',
	contract_expires DATE,
	is_manager BOOLEAN NOT NULL DEFAULT FALSE,
	UNIQUE (name, current_club_name)
);

CREATE TABLE IF NOT EXISTS scraped_articles (
	id BIGSERIAL PRIMARY KEY,
	url TEXT NOT NULL UNIQUE,
	source_type TEXT NOT NULL,
	source_name TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	raw_content TEXT NOT NULL DEFAULT '',
	processed BOOLEAN NOT NULL DEFAULT FALSE,
	claims_created INTEGER NOT NULL DEFAULT 0,
	processing_error TEXT NOT NULL DEFAULT '',
	scraped_at TIMESTAMPTZ NOT NULL
)
`
