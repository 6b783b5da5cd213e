package db

// Column describes one column of the target schema. Type is the logical
// type; each dialect maps it to its own storage type.
type Column struct {
	Name     string
	Type     string
	Identity bool
}

type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string
}

type Table struct {
	Name        string
	PrimaryKey  string
	Columns     []Column
	Indexes     []Index
	ForeignKeys []ForeignKey
	Checks      []string
}

// TargetSchema is the schema produced by applying every migration in
// Migrations to an empty database. It is data only; Migrator.Verify compares
// a live database against it.
var TargetSchema = []Table{
	{
		Name:       "Users",
		PrimaryKey: "user_id",
		Columns: []Column{
			{Name: "user_id", Type: "bigint", Identity: true},
			{Name: "email", Type: "text"},
			{Name: "password", Type: "text"},
			{Name: "username", Type: "text"},
			{Name: "mobile_number", Type: "text"},
			{Name: "user_role", Type: "text"},
		},
		Indexes: []Index{
			{Name: "UX_Users_Email", Columns: []string{"email"}, Unique: true},
		},
	},
	{
		Name:       "Resorts",
		PrimaryKey: "resort_id",
		Columns: []Column{
			{Name: "resort_id", Type: "bigint", Identity: true},
			{Name: "resort_name", Type: "text"},
			{Name: "resort_location", Type: "text"},
			{Name: "description", Type: "text"},
			{Name: "resort_image_url", Type: "text"},
			{Name: "price", Type: "bigint"},
			{Name: "capacity", Type: "int"},
			{Name: "resort_available_status", Type: "text"},
		},
	},
	{
		Name:       "Bookings",
		PrimaryKey: "booking_id",
		Columns: []Column{
			{Name: "booking_id", Type: "bigint", Identity: true},
			{Name: "from_date", Type: "timestamp"},
			{Name: "to_date", Type: "timestamp"},
			{Name: "address", Type: "text"},
			{Name: "no_of_persons", Type: "int"},
			{Name: "total_price", Type: "float"},
			{Name: "resort_id", Type: "bigint"},
			{Name: "user_id", Type: "bigint"},
		},
		Indexes: []Index{
			{Name: "IX_Bookings_ResortId", Columns: []string{"resort_id"}},
			{Name: "IX_Bookings_UserId", Columns: []string{"user_id"}},
		},
		ForeignKeys: []ForeignKey{
			{Name: "fk_Bookings_resort", Column: "resort_id", RefTable: "Resorts", RefColumn: "resort_id", OnDelete: "CASCADE"},
			{Name: "fk_Bookings_user", Column: "user_id", RefTable: "Users", RefColumn: "user_id", OnDelete: "CASCADE"},
		},
		Checks: []string{"chk_Bookings_to_date"},
	},
	{
		Name:       "Reviews",
		PrimaryKey: "review_id",
		Columns: []Column{
			{Name: "review_id", Type: "bigint", Identity: true},
			{Name: "subject", Type: "text"},
			{Name: "body", Type: "text"},
			{Name: "rating", Type: "int"},
			{Name: "date_created", Type: "timestamp"},
			{Name: "user_id", Type: "bigint"},
		},
		Indexes: []Index{
			{Name: "IX_Reviews_UserId", Columns: []string{"user_id"}},
		},
		ForeignKeys: []ForeignKey{
			{Name: "fk_Reviews_user", Column: "user_id", RefTable: "Users", RefColumn: "user_id", OnDelete: "CASCADE"},
		},
		Checks: []string{"chk_Reviews_rating"},
	},
}

// TableNames returns the table names of TargetSchema in creation order.
func TableNames() []string {
	names := make([]string, 0, len(TargetSchema))
	for _, t := range TargetSchema {
		names = append(names, t.Name)
	}

	return names
}
