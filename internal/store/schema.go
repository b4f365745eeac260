package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS report_cache (
    cache_key            TEXT PRIMARY KEY,
    workspace_id         TEXT NOT NULL,
    month                TEXT NOT NULL,
    as_of                TEXT NOT NULL,
    data_version         TEXT NOT NULL,
    kind                 TEXT NOT NULL,
    payload              BLOB NOT NULL,
    stored_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_report_cache_workspace ON report_cache(workspace_id, month);
CREATE INDEX IF NOT EXISTS idx_report_cache_stored ON report_cache(stored_at);
`
