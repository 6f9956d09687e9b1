package database

// TreeRootCategoryID is the id of the invisible category every root category
// hangs under. Migration 1 inserts it with path "1".
const TreeRootCategoryID = 1

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: store hierarchy
	{
		`CREATE TABLE categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_id INTEGER NOT NULL DEFAULT 0,
			name TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			include_in_menu BOOLEAN NOT NULL DEFAULT TRUE,
			available_sort_by TEXT NOT NULL DEFAULT '',
			default_sort_by TEXT NOT NULL DEFAULT '',
			display_mode TEXT NOT NULL DEFAULT 'PRODUCTS',
			is_anchor BOOLEAN NOT NULL DEFAULT FALSE,
			store_id INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_categories_name_level ON categories(name, level)`,
		`CREATE INDEX idx_categories_parent ON categories(parent_id)`,

		`INSERT INTO categories (id, parent_id, name, path, level, position, created_at, updated_at)
		 VALUES (1, 0, 'Root Catalog', '1', 0, 0, '2024-01-01T00:00:00.000Z', '2024-01-01T00:00:00.000Z')`,

		`CREATE TABLE websites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE store_groups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			website_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			root_category_id INTEGER NOT NULL,
			default_store_id INTEGER,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (website_id) REFERENCES websites(id),
			FOREIGN KEY (root_category_id) REFERENCES categories(id)
		)`,
		`CREATE INDEX idx_store_groups_name_website ON store_groups(name, website_id)`,

		`CREATE TABLE stores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT UNIQUE NOT NULL,
			website_id INTEGER NOT NULL,
			group_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (website_id) REFERENCES websites(id),
			FOREIGN KEY (group_id) REFERENCES store_groups(id)
		)`,
		`CREATE INDEX idx_stores_group ON stores(group_id)`,
	},

	// Migration 2: applied data patches
	{
		`CREATE TABLE patch_list (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			patch_name TEXT UNIQUE NOT NULL,
			applied_at TEXT NOT NULL
		)`,
	},
}
