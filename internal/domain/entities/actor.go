package entities

// Actor é a identidade autenticada que executa uma operação.
// Username é usado apenas para trilha de auditoria.
type Actor struct {
	ID       string
	Role     Role
	Username string
}

// IsAdmin verifica se o actor é administrador
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// HasPermission verifica se o actor tem uma permissão
func (a *Actor) HasPermission(permission Permission) bool {
	if a == nil {
		return false
	}
	return a.Role.HasPermission(permission)
}
