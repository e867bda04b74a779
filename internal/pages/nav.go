package pages

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Label string
	Href  string
}

// Route paths.
const (
	PathHome     = "/"
	PathFormDemo = "/form-demo"
	PathLogin    = "/login"
	PathDataGrid = "/component-demos/datagrid"
	PathUsers    = "/users"
)

// Navigation lists the shell links in display order. PathUsers has no page
// and resolves to the not found page.
var Navigation = []NavItem{
	{Label: "Home", Href: PathHome},
	{Label: "Form Demo", Href: PathFormDemo},
	{Label: "Login", Href: PathLogin},
	{Label: "DataGrid Demo", Href: PathDataGrid},
	{Label: "User Management", Href: PathUsers},
}
