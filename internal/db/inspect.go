package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type liveColumn struct {
	Type       string
	PrimaryKey bool
	Identity   bool
}

type liveIndex struct {
	Columns []string
	Unique  bool
}

type liveTable struct {
	Columns     map[string]liveColumn
	Indexes     map[string]liveIndex
	ForeignKeys []ForeignKey
}

// inspector reads the live catalog of one dialect.
type inspector interface {
	Tables() ([]string, error)
	Table(name string) (liveTable, error)
}

func newInspector(db *gorm.DB) (inspector, error) {
	switch name := db.Dialector.Name(); name {
	case "sqlite":
		return sqliteInspector{db: db}, nil
	case "postgres":
		return postgresInspector{db: db}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", name)
	}
}

// isInternalTable reports tables the engine or the runner maintains itself,
// such as sqlite_sequence for AUTOINCREMENT keys.
func isInternalTable(name string) bool {
	return name == HistoryTable || strings.HasPrefix(name, "sqlite_")
}

// typeAliases maps a logical column type to the storage types each dialect
// reports for it.
var typeAliases = map[string]map[string][]string{
	"sqlite": {
		"bigint":    {"integer"},
		"int":       {"integer"},
		"text":      {"text"},
		"timestamp": {"datetime"},
		"float":     {"real"},
	},
	"postgres": {
		"bigint":    {"int8", "bigint"},
		"int":       {"int4", "integer"},
		"text":      {"text"},
		"timestamp": {"timestamptz", "timestamp with time zone"},
		"float":     {"float8", "double precision"},
	},
}

func typeMatches(dialect, logical, actual string) bool {
	actual = strings.ToLower(strings.TrimSpace(actual))
	for _, alias := range typeAliases[dialect][logical] {
		if alias == actual {
			return true
		}
	}

	return false
}

type sqliteInspector struct {
	db *gorm.DB
}

func (i sqliteInspector) Tables() ([]string, error) {
	var names []string
	err := i.db.Raw(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`).Scan(&names).Error

	return names, err
}

func (i sqliteInspector) Table(name string) (liveTable, error) {
	live := liveTable{
		Columns: map[string]liveColumn{},
		Indexes: map[string]liveIndex{},
	}

	rows, err := i.db.Raw(`SELECT name, type, pk FROM pragma_table_info(?)`, name).Rows()
	if err != nil {
		return live, fmt.Errorf("pragma_table_info -> %w", err)
	}
	for rows.Next() {
		var (
			col, typ string
			pk       int
		)
		if err := rows.Scan(&col, &typ, &pk); err != nil {
			rows.Close()
			return live, err
		}
		// An INTEGER PRIMARY KEY aliases the rowid and is assigned automatically.
		live.Columns[col] = liveColumn{
			Type:       strings.ToLower(typ),
			PrimaryKey: pk > 0,
			Identity:   pk > 0 && strings.EqualFold(typ, "integer"),
		}
	}
	rows.Close()

	rows, err = i.db.Raw(`SELECT name, "unique" FROM pragma_index_list(?)`, name).Rows()
	if err != nil {
		return live, fmt.Errorf("pragma_index_list -> %w", err)
	}
	var indexNames []string
	unique := map[string]bool{}
	for rows.Next() {
		var (
			idx string
			u   int
		)
		if err := rows.Scan(&idx, &u); err != nil {
			rows.Close()
			return live, err
		}
		indexNames = append(indexNames, idx)
		unique[idx] = u == 1
	}
	rows.Close()

	for _, idx := range indexNames {
		var cols []string
		if err := i.db.Raw(`SELECT name FROM pragma_index_info(?) ORDER BY seqno`, idx).Scan(&cols).Error; err != nil {
			return live, fmt.Errorf("pragma_index_info -> %w", err)
		}
		live.Indexes[idx] = liveIndex{Columns: cols, Unique: unique[idx]}
	}

	rows, err = i.db.Raw(`SELECT "from", "table", "to", on_delete FROM pragma_foreign_key_list(?)`, name).Rows()
	if err != nil {
		return live, fmt.Errorf("pragma_foreign_key_list -> %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn, &fk.OnDelete); err != nil {
			return live, err
		}
		live.ForeignKeys = append(live.ForeignKeys, fk)
	}

	return live, rows.Err()
}

type postgresInspector struct {
	db *gorm.DB
}

func (i postgresInspector) Tables() ([]string, error) {
	var names []string
	err := i.db.Raw(`SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name`).Scan(&names).Error

	return names, err
}

func (i postgresInspector) Table(name string) (liveTable, error) {
	live := liveTable{
		Columns: map[string]liveColumn{},
		Indexes: map[string]liveIndex{},
	}

	var pks []string
	err := i.db.Raw(`SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = current_schema() AND tc.table_name = ?`,
		name).Scan(&pks).Error
	if err != nil {
		return live, fmt.Errorf("primary key query -> %w", err)
	}
	isPK := map[string]bool{}
	for _, c := range pks {
		isPK[c] = true
	}

	rows, err := i.db.Raw(`SELECT column_name, udt_name,
			is_identity = 'YES' OR COALESCE(column_default, '') LIKE 'nextval(%'
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ?`, name).Rows()
	if err != nil {
		return live, fmt.Errorf("columns query -> %w", err)
	}
	for rows.Next() {
		var (
			col, typ string
			identity bool
		)
		if err := rows.Scan(&col, &typ, &identity); err != nil {
			rows.Close()
			return live, err
		}
		live.Columns[col] = liveColumn{Type: typ, PrimaryKey: isPK[col], Identity: identity}
	}
	rows.Close()

	rows, err = i.db.Raw(`SELECT ic.relname, ix.indisunique, a.attname
		FROM pg_index ix
		JOIN pg_class t ON t.oid = ix.indrelid
		JOIN pg_class ic ON ic.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN LATERAL unnest(ix.indkey::int2[]) WITH ORDINALITY AS k(attnum, ord) ON true
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
		WHERE n.nspname = current_schema() AND t.relname = ?
		ORDER BY ic.relname, k.ord`, name).Rows()
	if err != nil {
		return live, fmt.Errorf("index query -> %w", err)
	}
	for rows.Next() {
		var (
			idx, col string
			unique   bool
		)
		if err := rows.Scan(&idx, &unique, &col); err != nil {
			rows.Close()
			return live, err
		}
		cur := live.Indexes[idx]
		cur.Unique = unique
		cur.Columns = append(cur.Columns, col)
		live.Indexes[idx] = cur
	}
	rows.Close()

	rows, err = i.db.Raw(`SELECT tc.constraint_name, kcu.column_name, ccu.table_name, ccu.column_name, rc.delete_rule
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
		JOIN information_schema.referential_constraints rc
			ON rc.constraint_name = tc.constraint_name AND rc.constraint_schema = tc.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name AND ccu.constraint_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = current_schema() AND tc.table_name = ?`,
		name).Rows()
	if err != nil {
		return live, fmt.Errorf("foreign key query -> %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Name, &fk.Column, &fk.RefTable, &fk.RefColumn, &fk.OnDelete); err != nil {
			return live, err
		}
		live.ForeignKeys = append(live.ForeignKeys, fk)
	}

	return live, rows.Err()
}

// sameReference compares foreign keys by what they connect. SQLite does not
// report constraint names, so names are ignored.
func sameReference(a, b ForeignKey) bool {
	return a.Column == b.Column &&
		a.RefTable == b.RefTable &&
		a.RefColumn == b.RefColumn &&
		strings.EqualFold(a.OnDelete, b.OnDelete)
}

func (fk ForeignKey) String() string {
	return fmt.Sprintf("%s -> %s.%s ON DELETE %s", fk.Column, fk.RefTable, fk.RefColumn, fk.OnDelete)
}

// compareTable lists the differences between one target table and its live
// counterpart.
func compareTable(dialect string, want Table, live liveTable) []string {
	var problems []string

	for _, c := range want.Columns {
		got, ok := live.Columns[c.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing column %s.%s", want.Name, c.Name))
			continue
		}
		if !typeMatches(dialect, c.Type, got.Type) {
			problems = append(problems, fmt.Sprintf("column %s.%s has type %s, want %s", want.Name, c.Name, got.Type, c.Type))
		}
		if c.Identity && !got.Identity {
			problems = append(problems, fmt.Sprintf("column %s.%s is not an identity column", want.Name, c.Name))
		}
		if (c.Name == want.PrimaryKey) != got.PrimaryKey {
			if got.PrimaryKey {
				problems = append(problems, fmt.Sprintf("unexpected primary key column %s.%s", want.Name, c.Name))
			} else {
				problems = append(problems, fmt.Sprintf("primary key of %s is not %s", want.Name, c.Name))
			}
		}
	}

	for _, idx := range want.Indexes {
		got, ok := live.Indexes[idx.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing index %s on %s", idx.Name, want.Name))
			continue
		}
		if got.Unique != idx.Unique {
			problems = append(problems, fmt.Sprintf("index %s on %s has unique=%t, want %t", idx.Name, want.Name, got.Unique, idx.Unique))
		}
		if strings.Join(got.Columns, ",") != strings.Join(idx.Columns, ",") {
			problems = append(problems, fmt.Sprintf("index %s on %s covers (%s), want (%s)",
				idx.Name, want.Name, strings.Join(got.Columns, ", "), strings.Join(idx.Columns, ", ")))
		}
	}

	matched := make([]bool, len(live.ForeignKeys))
	for _, fk := range want.ForeignKeys {
		found := false
		for i, got := range live.ForeignKeys {
			if !matched[i] && sameReference(fk, got) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			problems = append(problems, fmt.Sprintf("missing foreign key %s on %s (%s)", fk.Name, want.Name, fk))
		}
	}
	for i, got := range live.ForeignKeys {
		if !matched[i] {
			problems = append(problems, fmt.Sprintf("unexpected foreign key on %s (%s)", want.Name, got))
		}
	}

	return problems
}
