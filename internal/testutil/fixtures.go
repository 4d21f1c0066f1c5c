package testutil

import "github.com/mjovanc/njord/internal/row"

// User is the users table fixture.
type User struct {
	ID       row.AutoIncrementPrimaryKey[int64]
	Username string
	Email    string
	Address  string
}

var userSchema = row.NewSchema("users",
	row.AutoKey("id", func(u *User) *row.AutoIncrementPrimaryKey[int64] { return &u.ID }),
	row.String("username", func(u *User) *string { return &u.Username }),
	row.String("email", func(u *User) *string { return &u.Email }),
	row.String("address", func(u *User) *string { return &u.Address }),
)

func (u *User) TableName() string                       { return userSchema.TableName() }
func (u *User) ColumnFields() []string                  { return userSchema.Columns() }
func (u *User) ColumnValues() []string                  { return userSchema.Values(u) }
func (u *User) IsAutoIncrementPrimaryKey(c string) bool { return userSchema.IsAutoIncrement(c) }
func (u *User) SetColumnValue(c, v string) error        { return userSchema.Set(u, c, v) }

// Product is the products table fixture.
type Product struct {
	ID          row.AutoIncrementPrimaryKey[int64]
	UserID      int64
	Name        string
	Description string
	Price       float64
	Stock       int64
	Discount    float64
}

var productSchema = row.NewSchema("products",
	row.AutoKey("id", func(p *Product) *row.AutoIncrementPrimaryKey[int64] { return &p.ID }),
	row.Int("user_id", func(p *Product) *int64 { return &p.UserID }),
	row.String("name", func(p *Product) *string { return &p.Name }),
	row.String("description", func(p *Product) *string { return &p.Description }),
	row.Float("price", func(p *Product) *float64 { return &p.Price }),
	row.Int("stock_quantity", func(p *Product) *int64 { return &p.Stock }),
	row.Float("discount", func(p *Product) *float64 { return &p.Discount }),
)

func (p *Product) TableName() string                       { return productSchema.TableName() }
func (p *Product) ColumnFields() []string                  { return productSchema.Columns() }
func (p *Product) ColumnValues() []string                  { return productSchema.Values(p) }
func (p *Product) IsAutoIncrementPrimaryKey(c string) bool { return productSchema.IsAutoIncrement(c) }
func (p *Product) SetColumnValue(c, v string) error        { return productSchema.Set(p, c, v) }

// Category uses a caller-assigned key instead of an auto-increment one.
type Category struct {
	ID   row.PrimaryKey[int64]
	Name string
}

var categorySchema = row.NewSchema("categories",
	row.Key("id", func(c *Category) *row.PrimaryKey[int64] { return &c.ID }),
	row.String("name", func(c *Category) *string { return &c.Name }),
)

func (c *Category) TableName() string                       { return categorySchema.TableName() }
func (c *Category) ColumnFields() []string                  { return categorySchema.Columns() }
func (c *Category) ColumnValues() []string                  { return categorySchema.Values(c) }
func (c *Category) IsAutoIncrementPrimaryKey(n string) bool { return categorySchema.IsAutoIncrement(n) }
func (c *Category) SetColumnValue(n, v string) error        { return categorySchema.Set(c, n, v) }

var (
	_ row.Row = (*User)(nil)
	_ row.Row = (*Product)(nil)
	_ row.Row = (*Category)(nil)
)
