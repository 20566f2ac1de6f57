package web

import "strings"

// NavItem is one sidebar entry. Children gives the single nesting level
// expandable groups use.
type NavItem struct {
	Label    string
	Path     string
	Icon     string
	Children []NavItem
}

// Sidebar is the static backoffice navigation tree.
var Sidebar = []NavItem{
	{Label: "Dashboard", Path: "/app/dashboard", Icon: "chart"},
	{Label: "Usuarios", Path: "/app/users", Icon: "users"},
	{Label: "Citas", Path: "/app/appointments", Icon: "calendar"},
	{
		Label: "Catálogo", Icon: "folder",
		Children: []NavItem{
			{Label: "Especialidades", Path: "/app/specialties"},
			{Label: "Promociones", Path: "/app/promotions"},
			{Label: "Sedes", Path: "/app/workplaces"},
		},
	},
	{
		Label: "Pagos", Icon: "card",
		Children: []NavItem{
			{Label: "Métodos de pago", Path: "/app/payment-methods"},
			{Label: "Verificación de pagos", Path: "/app/payment-verification"},
		},
	},
	{Label: "Notificaciones", Path: "/app/notifications", Icon: "bell"},
	{Label: "Auditoría", Path: "/app/audit-logs", Icon: "list"},
}

// IsActive highlights the entry whose path prefixes the current one, so
// detail routes keep their section lit.
func (n NavItem) IsActive(currentPath string) bool {
	if n.Path != "" && strings.HasPrefix(currentPath, n.Path) {
		return true
	}
	for _, child := range n.Children {
		if child.IsActive(currentPath) {
			return true
		}
	}
	return false
}
